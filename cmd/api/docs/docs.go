// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with `swag init -g cmd/api/main.go -o cmd/api/docs` after
// changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/flashcards": {
            "post": {
                "description": "Generates question/answer flashcards from at least 100 characters of text. An empty card list comes back with a NO_CARDS_FOUND warning.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["flashcards"],
                "summary": "Generate flashcards from text",
                "parameters": [
                    {
                        "description": "Source text and subject",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.GenerateRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.FlashcardResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ValidationErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/flashcards/upload": {
            "post": {
                "description": "Extracts text from an uploaded PDF or UTF-8 text file and generates flashcards from it",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["flashcards"],
                "summary": "Generate flashcards from a file",
                "parameters": [
                    {"type": "file", "description": "PDF or TXT document", "name": "file", "in": "formData", "required": true},
                    {
                        "enum": ["General", "Science", "History", "Math", "Literature"],
                        "type": "string",
                        "description": "Subject",
                        "name": "subject",
                        "in": "formData"
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.FlashcardResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/flashcards/{request_id}": {
            "get": {
                "description": "Returns a stored generation result by its request ID while it is still cached",
                "produces": ["application/json"],
                "tags": ["flashcards"],
                "summary": "Fetch a previous result",
                "parameters": [
                    {"type": "string", "description": "Request ID", "name": "request_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.FlashcardResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/subjects": {
            "get": {
                "description": "Returns the subjects accepted by the generation endpoints",
                "produces": ["application/json"],
                "tags": ["flashcards"],
                "summary": "List subjects",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SubjectsResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.ValidationError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"},
                "rule": {"type": "string"}
            }
        },
        "dto.FlashcardItem": {
            "type": "object",
            "properties": {
                "answer": {"type": "string"},
                "question": {"type": "string"}
            }
        },
        "dto.FlashcardResponse": {
            "description": "Generated flashcards",
            "type": "object",
            "properties": {
                "card_count": {"type": "integer"},
                "cards": {"type": "array", "items": {"$ref": "#/definitions/dto.FlashcardItem"}},
                "request_id": {"type": "string"},
                "subject": {"type": "string"},
                "warning": {"$ref": "#/definitions/dto.WarningBody"}
            }
        },
        "dto.GenerateRequest": {
            "description": "Source text and optional subject for flashcard generation",
            "type": "object",
            "properties": {
                "subject": {"type": "string", "example": "Science"},
                "text": {"type": "string", "maxLength": 200000, "example": "Photosynthesis is the process by which green plants..."}
            }
        },
        "dto.HealthResponse": {
            "description": "Service health",
            "type": "object",
            "properties": {
                "cache": {"type": "string"},
                "model": {"type": "string"},
                "model_error": {"type": "string"},
                "model_ready": {"type": "boolean"},
                "status": {"type": "string"}
            }
        },
        "dto.SubjectsResponse": {
            "description": "Available subjects",
            "type": "object",
            "properties": {
                "subjects": {"type": "array", "items": {"type": "string"}}
            }
        },
        "dto.WarningBody": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "middleware.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "middleware.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/domain.ValidationError"}},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8090",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Flashgen API",
	Description:      "Generates question/answer flashcards from study text or uploaded documents.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
