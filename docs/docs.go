// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with `swag init -g cmd/main.go` after changing handler annotations.
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
        "/health": {
            "get": {"produces": ["application/json"], "tags": ["system"], "summary": "Health check",
                "responses": {"200": {"description": "OK"}}}
        },
        "/auth/sign-up": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["auth"], "summary": "Register",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.signUpRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/auth/sign-in": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["auth"], "summary": "Sign in",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.signInRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.Token"}}, "401": {"description": "Unauthorized"}}}
        },
        "/auth/logout": {
            "post": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["auth"], "summary": "Sign out",
                "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/notes": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["notes"], "summary": "List notes",
                "responses": {"200": {"description": "count, notes"}, "401": {"description": "Unauthorized"}}},
            "post": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "tags": ["notes"], "summary": "Create note",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.NoteRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Note"}}, "400": {"description": "Bad Request"}}}
        },
        "/api/v1/notes/search": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["notes"], "summary": "Search notes",
                "parameters": [{"type": "string", "name": "q", "in": "query"}],
                "responses": {"200": {"description": "query, count, notes"}}}
        },
        "/api/v1/notes/{id}": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["notes"], "summary": "Get note",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Note"}}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "tags": ["notes"], "summary": "Update note",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.NoteRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Note"}}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["notes"], "summary": "Delete note",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/activity": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["activity"], "summary": "List activity",
                "parameters": [{"type": "string", "name": "from", "in": "query"}, {"type": "string", "name": "to", "in": "query"}, {"type": "string", "name": "type", "in": "query"}],
                "responses": {"200": {"description": "count, events"}, "400": {"description": "Bad Request"}}}
        },
        "/api/v1/csrf": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["auth"], "summary": "Issue CSRF token",
                "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "handlers.NoteRequest": {"type": "object", "properties": {"title": {"type": "string", "example": "Groceries"}, "content": {"type": "string", "example": "milk, eggs"}}},
        "handlers.signUpRequest": {"type": "object", "properties": {"username": {"type": "string"}, "password": {"type": "string"}, "confirm_password": {"type": "string"}}},
        "handlers.signInRequest": {"type": "object", "properties": {"username": {"type": "string"}, "password": {"type": "string"}}},
        "models.Note": {"type": "object", "properties": {"id": {"type": "integer"}, "title": {"type": "string"}, "content": {"type": "string"}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}}},
        "service.Token": {"type": "object", "properties": {"token": {"type": "string"}, "expires_at": {"type": "string"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Secure Notes API",
	Description:      "Multi-user notes with session authentication and owner-scoped access.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
