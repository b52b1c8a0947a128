package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Exam Seat Finder API",
        "description": "Hall ticket lookup, classroom seating charts and exam rosters",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Search", "description": "Hall ticket to seat resolution"},
        {"name": "Classrooms", "description": "Rooms, layouts and seating charts"},
        {"name": "Students", "description": "Student roster"},
        {"name": "Exams", "description": "Exam schedule and roster downloads"}
    ],
    "paths": {
        "/search": {
            "get": {
                "tags": ["Search"],
                "summary": "Find a seat by hall ticket",
                "parameters": [
                    {"name": "hallTicket", "in": "query", "type": "string", "required": true, "description": "Case-sensitive, alphanumeric"},
                    {"name": "examId", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No seat, or the allocation points at missing data", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/seats/{id}/landmarks": {
            "get": {
                "tags": ["Search"],
                "summary": "Landmarks near a seat",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Seat not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classrooms": {
            "get": {
                "tags": ["Classrooms"],
                "summary": "List classrooms",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classrooms/{id}": {
            "get": {
                "tags": ["Classrooms"],
                "summary": "Classroom detail with seats and landmarks",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Classroom not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classrooms/{id}/layout": {
            "get": {
                "tags": ["Classrooms"],
                "summary": "Projected seating chart geometry",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "examId", "in": "query", "type": "string"},
                    {"name": "selectedSeatId", "in": "query", "type": "string"},
                    {"name": "cellSize", "in": "query", "type": "number"},
                    {"name": "padding", "in": "query", "type": "number"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid projection", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Classroom, exam or seat not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classrooms/{id}/chart.svg": {
            "get": {
                "tags": ["Classrooms"],
                "summary": "Seating chart as SVG",
                "produces": ["image/svg+xml"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "examId", "in": "query", "type": "string"},
                    {"name": "selectedSeatId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "SVG document"}
                }
            }
        },
        "/classrooms/{id}/chart.pdf": {
            "get": {
                "tags": ["Classrooms"],
                "summary": "Seating chart as PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "examId", "in": "query", "type": "string"},
                    {"name": "selectedSeatId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF file", "schema": {"type": "file"}}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "section", "in": "query", "type": "string"},
                    {"name": "examId", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Student with resolved seat allocations",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exams": {
            "get": {
                "tags": ["Exams"],
                "summary": "List exams",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exams/{id}": {
            "get": {
                "tags": ["Exams"],
                "summary": "Exam detail",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Exam not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exams/{id}/roster.csv": {
            "get": {
                "tags": ["Exams"],
                "summary": "Exam seating roster as CSV",
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "CSV file", "schema": {"type": "file"}}
                }
            }
        },
        "/exams/{id}/roster.pdf": {
            "get": {
                "tags": ["Exams"],
                "summary": "Exam seating roster as PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "PDF file", "schema": {"type": "file"}}
                }
            }
        }
    },
    "definitions": {
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
