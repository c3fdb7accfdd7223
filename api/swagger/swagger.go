package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Plant Tracker API",
        "description": "Maintenance problem tracking for production lines",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Staff login"},
        {"name": "Sites", "description": "Configured sites and form vocabularies"},
        {"name": "Problems", "description": "Submit and update problems"},
        {"name": "Dashboard", "description": "Active dashboard and resolved history"},
        {"name": "Drafts", "description": "Spare part and step composer"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate staff",
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sites": {
            "get": {
                "tags": ["Sites"],
                "summary": "List sites and form options",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sites/{site}/problems": {
            "get": {
                "tags": ["Problems"],
                "summary": "List problems",
                "parameters": [
                    {"$ref": "#/parameters/site"},
                    {"in": "query", "name": "line", "type": "string"},
                    {"in": "query", "name": "priority", "type": "string"},
                    {"in": "query", "name": "status", "type": "string"},
                    {"in": "query", "name": "engineer", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Problems"],
                "summary": "Submit a new problem",
                "parameters": [
                    {"$ref": "#/parameters/site"},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/SubmitProblemRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Record store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sites/{site}/problems/open": {
            "get": {
                "tags": ["Problems"],
                "summary": "List problems that can still be updated",
                "parameters": [{"$ref": "#/parameters/site"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sites/{site}/problems/{id}": {
            "get": {
                "tags": ["Problems"],
                "summary": "Get a problem",
                "parameters": [
                    {"$ref": "#/parameters/site"},
                    {"in": "path", "name": "id", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sites/{site}/problems/{id}/status": {
            "patch": {
                "tags": ["Problems"],
                "summary": "Update a problem's status",
                "parameters": [
                    {"$ref": "#/parameters/site"},
                    {"in": "path", "name": "id", "required": true, "type": "integer"},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/UpdateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Transition not allowed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sites/{site}/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Active problems dashboard",
                "parameters": [
                    {"$ref": "#/parameters/site"},
                    {"in": "query", "name": "line", "type": "string"},
                    {"in": "query", "name": "priority", "type": "string"},
                    {"in": "query", "name": "status", "type": "string", "enum": ["OPEN", "IN PROGRESS"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sites/{site}/history": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Resolved problems history",
                "parameters": [
                    {"$ref": "#/parameters/site"},
                    {"in": "query", "name": "line", "type": "string"},
                    {"in": "query", "name": "engineer", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sites/{site}/history/export": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Export resolved problems history",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"$ref": "#/parameters/site"},
                    {"in": "query", "name": "line", "type": "string"},
                    {"in": "query", "name": "engineer", "type": "string"},
                    {"in": "query", "name": "format", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Rendered file"},
                    "400": {"description": "Unknown format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sites/{site}/drafts": {
            "post": {
                "tags": ["Drafts"],
                "summary": "Open a draft",
                "parameters": [{"$ref": "#/parameters/site"}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sites/{site}/drafts/{draftId}": {
            "get": {
                "tags": ["Drafts"],
                "summary": "Get a draft",
                "parameters": [{"$ref": "#/parameters/site"}, {"$ref": "#/parameters/draftId"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Drafts"],
                "summary": "Cancel a draft",
                "parameters": [{"$ref": "#/parameters/site"}, {"$ref": "#/parameters/draftId"}],
                "responses": {
                    "204": {"description": "Cancelled"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sites/{site}/drafts/{draftId}/spare-parts": {
            "post": {
                "tags": ["Drafts"],
                "summary": "Add a spare part to a draft",
                "parameters": [
                    {"$ref": "#/parameters/site"},
                    {"$ref": "#/parameters/draftId"},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/SparePart"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sites/{site}/drafts/{draftId}/steps": {
            "post": {
                "tags": ["Drafts"],
                "summary": "Add a troubleshooting step to a draft",
                "parameters": [
                    {"$ref": "#/parameters/site"},
                    {"$ref": "#/parameters/draftId"},
                    {"in": "body", "name": "payload", "required": true, "schema": {"type": "object", "properties": {"text": {"type": "string"}}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "parameters": {
        "site": {"in": "path", "name": "site", "required": true, "type": "string"},
        "draftId": {"in": "path", "name": "draftId", "required": true, "type": "string", "format": "uuid"}
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "SparePart": {
            "type": "object",
            "properties": {
                "part_number": {"type": "string"},
                "part_name": {"type": "string"},
                "in_stock": {"type": "boolean"},
                "quantity": {"type": "integer", "minimum": 1}
            }
        },
        "SubmitProblemRequest": {
            "type": "object",
            "required": ["line_number", "date_submitted", "task", "priority", "submitted_by_engineer"],
            "properties": {
                "draft_id": {"type": "string", "format": "uuid"},
                "line_number": {"type": "string"},
                "date_submitted": {"type": "string", "example": "01/01/2025"},
                "task": {"type": "string"},
                "spare_parts": {"type": "array", "items": {"$ref": "#/definitions/SparePart"}},
                "priority": {"type": "string", "enum": ["Low", "Medium", "High", "CRITICAL"]},
                "notes": {"type": "string"},
                "submitted_by_engineer": {"type": "string"},
                "expected_due_date": {"type": "string", "example": "05/01/2025"},
                "troubleshooting_steps": {"type": "array", "items": {"type": "string"}}
            }
        },
        "UpdateStatusRequest": {
            "type": "object",
            "required": ["status", "assigned_engineer"],
            "properties": {
                "status": {"type": "string", "enum": ["OPEN", "IN PROGRESS", "RESOLVED"]},
                "assigned_engineer": {"type": "string"},
                "date_resolved": {"type": "string", "example": "04/01/2025"},
                "resolution_notes": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "fields": {"type": "array", "items": {"type": "string"}},
                "retryable": {"type": "boolean"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
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
