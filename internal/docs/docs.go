// Package docs registers the hand-maintained OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "User created", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "400": {"description": "Invalid input or email already registered", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}],
                "responses": {
                    "200": {"description": "Login successful", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/google": {
            "get": {
                "tags": ["auth"],
                "summary": "Start Google sign-in",
                "responses": {"307": {"description": "Redirect to Google"}}
            }
        },
        "/auth/google/callback": {
            "get": {
                "tags": ["auth"],
                "summary": "Google sign-in callback",
                "parameters": [
                    {"type": "string", "name": "code", "in": "query"},
                    {"type": "string", "name": "state", "in": "query"}
                ],
                "responses": {"302": {"description": "Redirect to the frontend login page"}}
            }
        },
        "/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Get user profile",
                "responses": {
                    "200": {"description": "User profile", "schema": {"$ref": "#/definitions/handlers.ProfileResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/transactions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "List transactions",
                "parameters": [
                    {"type": "string", "name": "category", "in": "query"},
                    {"type": "string", "name": "type", "in": "query"},
                    {"type": "string", "name": "startDate", "in": "query"},
                    {"type": "string", "name": "endDate", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "pageSize", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Transactions", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Transaction"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Create a transaction",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.TransactionRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Transaction"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/transactions/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Period summary",
                "parameters": [
                    {"type": "string", "name": "startDate", "in": "query"},
                    {"type": "string", "name": "endDate", "in": "query"}
                ],
                "responses": {"200": {"description": "Summary"}}
            }
        },
        "/transactions/chart": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Daily chart series",
                "parameters": [
                    {"type": "string", "name": "startDate", "in": "query"},
                    {"type": "string", "name": "endDate", "in": "query"}
                ],
                "responses": {"200": {"description": "Chart points"}}
            }
        },
        "/transactions/categories": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Expenses by category",
                "parameters": [{"type": "integer", "name": "days", "in": "query"}],
                "responses": {"200": {"description": "Breakdown"}}
            }
        },
        "/transactions/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Get transaction by ID",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Transaction", "schema": {"$ref": "#/definitions/models.Transaction"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Update a transaction",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.TransactionRequest"}}
                ],
                "responses": {"200": {"description": "Updated", "schema": {"$ref": "#/definitions/models.Transaction"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Delete a transaction",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Deleted", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}}}
            }
        },
        "/targets": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["targets"],
                "summary": "List savings targets",
                "responses": {"200": {"description": "Targets"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["targets"],
                "summary": "Create a savings target",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateTargetRequest"}}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/targets/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["targets"],
                "summary": "Savings targets summary",
                "responses": {"200": {"description": "Summary"}}
            }
        },
        "/targets/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["targets"],
                "summary": "Update a savings target",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateTargetRequest"}}
                ],
                "responses": {"200": {"description": "Updated"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["targets"],
                "summary": "Delete a savings target",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Deleted", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}}}
            }
        },
        "/targets/{id}/progress": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["targets"],
                "summary": "Add progress to a savings target",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.ProgressRequest"}}
                ],
                "responses": {"200": {"description": "Updated"}}
            }
        },
        "/ai/advisor": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["ai"],
                "summary": "Ask the financial advisor",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.AdviceRequest"}}],
                "responses": {"200": {"description": "Advice"}}
            }
        },
        "/ai/analyze": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["ai"],
                "summary": "Analyze recent spending",
                "responses": {"200": {"description": "Analysis"}}
            }
        },
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Degraded"}}
            }
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string"},
                "details": {}
            }
        },
        "handlers.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "handlers.RegisterRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {
                "name": {"type": "string", "maxLength": 100},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6}
            }
        },
        "handlers.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handlers.UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "handlers.AuthResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/handlers.UserResponse"}
            }
        },
        "handlers.ProfileResponse": {
            "type": "object",
            "properties": {"user": {"$ref": "#/definitions/handlers.UserResponse"}}
        },
        "handlers.TransactionRequest": {
            "type": "object",
            "required": ["amount", "category", "type"],
            "properties": {
                "amount": {"type": "number"},
                "type": {"type": "string", "enum": ["income", "expense"]},
                "category": {"type": "string"},
                "description": {"type": "string"},
                "date": {"type": "string"}
            }
        },
        "handlers.CreateTargetRequest": {
            "type": "object",
            "required": ["targetAmount", "title"],
            "properties": {
                "title": {"type": "string"},
                "targetAmount": {"type": "number"},
                "category": {"type": "string"},
                "deadline": {"type": "string"}
            }
        },
        "handlers.UpdateTargetRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "targetAmount": {"type": "number"},
                "category": {"type": "string"},
                "deadline": {"type": "string"},
                "status": {"type": "string", "enum": ["active", "completed", "paused"]}
            }
        },
        "handlers.ProgressRequest": {
            "type": "object",
            "required": ["amount"],
            "properties": {"amount": {"type": "number"}}
        },
        "handlers.AdviceRequest": {
            "type": "object",
            "properties": {"question": {"type": "string"}}
        },
        "models.Transaction": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "amount": {"type": "number"},
                "type": {"type": "string"},
                "category": {"type": "string"},
                "description": {"type": "string"},
                "date": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Cashnote API",
	Description:      "Cashnote is a personal finance API for recording income and expenses, tracking savings targets and asking a financial advisor.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
