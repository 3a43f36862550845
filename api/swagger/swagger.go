package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Gym Management API",
        "description": "Members, trainers and equipment of a single gym.",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Trainers", "description": "Trainer roster and certificates"},
        {"name": "Members", "description": "Memberships"},
        {"name": "Equipment", "description": "Inventory and maintenance"},
        {"name": "Uploads", "description": "Photos, images and certificate files"},
        {"name": "Authentication", "description": "Optional admin session"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["System"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Health"}},
                    "503": {"description": "Database unreachable", "schema": {"$ref": "#/definitions/Health"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate the gym admin",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/trainers": {
            "get": {
                "tags": ["Trainers"],
                "summary": "List trainers, newest first",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "specialization", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Trainer"}}}
                }
            },
            "post": {
                "tags": ["Trainers"],
                "summary": "Create trainer",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TrainerPayload"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Trainer"}},
                    "400": {"description": "Validation failed or email exists", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/trainers/{id}": {
            "get": {
                "tags": ["Trainers"],
                "summary": "Get trainer",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}],
                "responses": {
                    "200": {"description": "OK", "headers": {"ETag": {"type": "string"}}, "schema": {"$ref": "#/definitions/Trainer"}},
                    "404": {"description": "Trainer not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "put": {
                "tags": ["Trainers"],
                "summary": "Update trainer",
                "description": "Missing or null fields keep their stored values. The specialization list is reconciled and never empty.",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"},
                    {"name": "If-Match", "in": "header", "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TrainerPayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Trainer"}},
                    "404": {"description": "Trainer not found", "schema": {"$ref": "#/definitions/Error"}},
                    "412": {"description": "Modified by another request", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "patch": {
                "tags": ["Trainers"],
                "summary": "Partially update trainer",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"},
                    {"name": "If-Match", "in": "header", "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TrainerPayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Trainer"}}
                }
            },
            "delete": {
                "tags": ["Trainers"],
                "summary": "Delete trainer",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}],
                "responses": {
                    "200": {"description": "Trainer deleted successfully", "schema": {"$ref": "#/definitions/Message"}}
                }
            }
        },
        "/trainers/{id}/certificates": {
            "post": {
                "tags": ["Trainers"],
                "summary": "Attach certificate files",
                "consumes": ["multipart/form-data"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"},
                    {"name": "files", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Trainer"}}
                }
            }
        },
        "/members": {
            "get": {
                "tags": ["Members"],
                "summary": "List members",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "membership_type", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Members"],
                "summary": "Create member",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Duplicate entry", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/members/{id}": {
            "get": {"tags": ["Members"], "summary": "Get member", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Members"], "summary": "Update member", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Members"], "summary": "Delete member", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Member deleted successfully"}}}
        },
        "/equipment": {
            "get": {
                "tags": ["Equipment"],
                "summary": "List equipment",
                "parameters": [
                    {"name": "category", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "condition", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "orderBy", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Equipment"],
                "summary": "Create equipment (JSON or multipart with image)",
                "consumes": ["application/json", "multipart/form-data"],
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Duplicate serial number"}}
            }
        },
        "/equipment/maintenance-due": {
            "get": {
                "tags": ["Equipment"],
                "summary": "Equipment due for maintenance",
                "parameters": [{"name": "days", "in": "query", "type": "integer", "default": 30}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/equipment/{id}": {
            "get": {"tags": ["Equipment"], "summary": "Get equipment", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Equipment"], "summary": "Update equipment", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Equipment"], "summary": "Delete equipment", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Equipment deleted successfully"}}}
        },
        "/upload/profile-photo": {
            "post": {
                "tags": ["Uploads"],
                "summary": "Upload a profile photo",
                "consumes": ["multipart/form-data"],
                "parameters": [{"name": "file", "in": "formData", "required": true, "type": "file"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/UploadedFile"}},
                    "413": {"description": "File too large"},
                    "415": {"description": "File type not allowed"}
                }
            }
        },
        "/upload/certificates": {
            "post": {
                "tags": ["Uploads"],
                "summary": "Upload certificate files",
                "consumes": ["multipart/form-data"],
                "parameters": [{"name": "files", "in": "formData", "required": true, "type": "file"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/upload/equipment-image": {
            "post": {
                "tags": ["Uploads"],
                "summary": "Upload an equipment image",
                "consumes": ["multipart/form-data"],
                "parameters": [{"name": "image", "in": "formData", "required": true, "type": "file"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/UploadedFile"}}}
            }
        }
    },
    "definitions": {
        "Trainer": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "specialization": {"type": "string"},
                "specializations": {"type": "array", "items": {"type": "string"}},
                "certifications": {"type": "array", "items": {"type": "string"}},
                "certificate_files": {"type": "array", "items": {"type": "string"}},
                "hire_date": {"type": "string", "format": "date"},
                "hourly_rate": {"type": "number"},
                "bio": {"type": "string"},
                "status": {"type": "string", "enum": ["active", "inactive", "on_leave"]},
                "availability": {"type": "string"},
                "profile_photo": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "TrainerPayload": {
            "type": "object",
            "properties": {
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "specialization": {"type": "string"},
                "specializations": {"type": "array", "items": {"type": "string"}},
                "certifications": {"type": "string", "description": "comma separated or array"},
                "certificate_files": {"type": "array", "items": {"type": "string"}},
                "hire_date": {"type": "string", "format": "date"},
                "hourly_rate": {"type": "number"},
                "bio": {"type": "string"},
                "status": {"type": "string"},
                "availability": {"type": "string"},
                "profile_photo": {"type": "string"}
            }
        },
        "UploadedFile": {
            "type": "object",
            "properties": {
                "url": {"type": "string"},
                "filename": {"type": "string"},
                "size": {"type": "integer"},
                "mimetype": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "LoginResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string"},
                "expires_in": {"type": "integer"},
                "expires_at": {"type": "string", "format": "date-time"}
            }
        },
        "Health": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "database": {"type": "string"},
                "cache": {"type": "string"},
                "timestamp": {"type": "string", "format": "date-time"}
            }
        },
        "Message": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "Error": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "errors": {"type": "array", "items": {"type": "string"}},
                "code": {"type": "string"}
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
