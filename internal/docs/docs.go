// Package docs registers the OpenAPI document served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/health": {"get": {"tags": ["Meta"], "summary": "Health check", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Result"}}}}},
        "/palette": {"get": {"tags": ["Meta"], "summary": "Project colour palette", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Result"}}}}},
        "/auth/signup": {"post": {"tags": ["Auth"], "summary": "Sign up",
            "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SignUpRequest"}}],
            "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.Result"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/dto.Result"}}}}},
        "/auth/login": {"post": {"tags": ["Auth"], "summary": "Sign in",
            "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Result"}}, "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/dto.Result"}}}}},
        "/me": {"get": {"tags": ["Auth"], "summary": "Current user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Result"}}}}},
        "/workspaces": {
            "get": {"tags": ["Workspaces"], "summary": "List my workspaces", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Result"}}}},
            "post": {"tags": ["Workspaces"], "summary": "Create workspace", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateWorkspaceRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.Result"}}}}
        },
        "/workspaces/{id}/hierarchy": {"get": {"tags": ["Workspaces"], "summary": "Workspace hierarchy", "security": [{"BearerAuth": []}],
            "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Result"}}, "403": {"description": "Not a member", "schema": {"$ref": "#/definitions/dto.Result"}}}}},
        "/workspaces/{id}/projects": {"post": {"tags": ["Projects"], "summary": "Create project", "security": [{"BearerAuth": []}],
            "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateProjectRequest"}}],
            "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.Result"}}}}},
        "/workspaces/{id}/tables": {"post": {"tags": ["Tables"], "summary": "Create table", "security": [{"BearerAuth": []}],
            "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateTableRequest"}}],
            "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.Result"}}}}},
        "/workspaces/{id}/invitations": {"post": {"tags": ["Invitations"], "summary": "Invite member", "security": [{"BearerAuth": []}],
            "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateInvitationRequest"}}],
            "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.Result"}}, "403": {"description": "Owner or admin only", "schema": {"$ref": "#/definitions/dto.Result"}}}}},
        "/tables/{id}": {"get": {"tags": ["Tables"], "summary": "Get table with fields", "security": [{"BearerAuth": []}],
            "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Result"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/dto.Result"}}}}},
        "/tables/{id}/fields": {"post": {"tags": ["Fields"], "summary": "Create field", "security": [{"BearerAuth": []}],
            "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateFieldRequest"}}],
            "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.Result"}}}}},
        "/tables/{id}/records": {
            "get": {"tags": ["Records"], "summary": "List records", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}, {"in": "query", "name": "page", "type": "integer", "default": 1}, {"in": "query", "name": "page_size", "type": "integer", "default": 50}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Result"}}}},
            "post": {"tags": ["Records"], "summary": "Create record", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}, {"in": "body", "name": "body", "schema": {"$ref": "#/definitions/dto.RecordRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.Result"}}}}
        },
        "/invitations/{token}/preview": {"get": {"tags": ["Invitations"], "summary": "Preview invitation",
            "parameters": [{"in": "path", "name": "token", "required": true, "type": "string"}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Result"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/dto.Result"}}}}},
        "/invitations/{token}/accept": {"post": {"tags": ["Invitations"], "summary": "Accept invitation", "security": [{"BearerAuth": []}],
            "parameters": [{"in": "path", "name": "token", "required": true, "type": "string"}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Result"}}, "403": {"description": "Email mismatch", "schema": {"$ref": "#/definitions/dto.Result"}}}}}
    },
    "definitions": {
        "dto.Result": {"type": "object", "properties": {
            "success": {"type": "boolean"},
            "data": {"type": "object"},
            "error": {"$ref": "#/definitions/dto.ErrorBody"}}},
        "dto.ErrorBody": {"type": "object", "properties": {
            "code": {"type": "string", "enum": ["AUTHENTICATION_ERROR", "AUTHORIZATION_ERROR", "VALIDATION_ERROR", "NOT_FOUND", "DATABASE_ERROR", "UNKNOWN_ERROR"]},
            "message": {"type": "string"}}},
        "dto.SignUpRequest": {"type": "object", "properties": {
            "full_name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}, "invitation_token": {"type": "string"}}},
        "dto.LoginRequest": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "dto.CreateWorkspaceRequest": {"type": "object", "properties": {"name": {"type": "string"}, "slug": {"type": "string"}, "description": {"type": "string"}}},
        "dto.CreateProjectRequest": {"type": "object", "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "color": {"type": "string"}}},
        "dto.CreateTableRequest": {"type": "object", "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "project_id": {"type": "string", "format": "uuid"}}},
        "dto.CreateFieldRequest": {"type": "object", "properties": {
            "name": {"type": "string"},
            "type": {"type": "string", "enum": ["text", "number", "select", "date", "boolean", "email", "url", "richtext", "json", "relation"]},
            "options": {"type": "object"}}},
        "dto.CreateInvitationRequest": {"type": "object", "properties": {"email": {"type": "string"}, "role": {"type": "string", "enum": ["owner", "admin", "member"]}}},
        "dto.RecordRequest": {"type": "object", "properties": {"data": {"type": "object"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "NocodeDB API",
	Description:      "Workspaces, projects, typed tables and JSON records behind one authorization gate.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
