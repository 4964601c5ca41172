// Package docs holds the OpenAPI document served under /swagger/.
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
        "/api-auth/signup/": {
            "post": {
                "description": "Creates an account and returns a fresh token pair.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a user",
                "parameters": [
                    {"description": "Credentials", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.signUpRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/auth.Pair"}},
                    "400": {"description": "missing fields, weak password or taken username", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api-auth/login/": {
            "post": {
                "description": "Exchanges credentials for an access/refresh token pair.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Credentials", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.signUpRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.Pair"}},
                    "400": {"description": "missing fields", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "401": {"description": "invalid credentials", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api-auth/token/refresh/": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Refresh the access token",
                "parameters": [
                    {"description": "Refresh token", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.refreshRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.AccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "401": {"description": "revoked, expired or malformed token", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api-auth/logout/": {
            "post": {
                "description": "Revokes a refresh token so it can no longer be exchanged.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log out",
                "parameters": [
                    {"description": "Refresh token", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.logoutRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.MessageResponse"}},
                    "400": {"description": "missing or invalid refresh token", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/breeds/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["breeds"],
                "summary": "List breeds",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/http.BreedResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["breeds"],
                "summary": "Add a breed",
                "parameters": [
                    {"description": "Breed", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.breedRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.BreedResponse"}},
                    "400": {"description": "invalid or duplicate name", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/breeds/{id}/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["breeds"],
                "summary": "Get a breed",
                "parameters": [
                    {"type": "integer", "description": "Breed ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.BreedResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/cats/": {
            "get": {
                "description": "Public listing, optionally narrowed to one breed.",
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "List cats",
                "parameters": [
                    {"type": "integer", "description": "Breed ID", "name": "breed_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/http.CatResponse"}}},
                    "400": {"description": "invalid breed_id", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "The authenticated user becomes the owner.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Register a cat",
                "parameters": [
                    {"description": "Cat", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.catRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.CatResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/cats/{id}/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Get a cat",
                "parameters": [
                    {"type": "integer", "description": "Cat ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.CatResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Replace a cat",
                "parameters": [
                    {"type": "integer", "description": "Cat ID", "name": "id", "in": "path", "required": true},
                    {"description": "Cat", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.catRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.CatResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "403": {"description": "not the owner", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Removes the cat together with its votes and photo.",
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Delete a cat",
                "parameters": [
                    {"type": "integer", "description": "Cat ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.MessageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "403": {"description": "not the owner", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Update some fields of a cat",
                "parameters": [
                    {"type": "integer", "description": "Cat ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.catPatchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.CatResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "403": {"description": "not the owner", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/cats/{id}/photo/": {
            "get": {
                "description": "Redirects to a short-lived presigned URL.",
                "tags": ["cats"],
                "summary": "Fetch a cat photo",
                "parameters": [
                    {"type": "integer", "description": "Cat ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "302": {"description": "Found"},
                    "404": {"description": "no such cat or no photo", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "503": {"description": "photo storage is not configured", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Replaces the cat's photo. Owner only.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Upload a cat photo",
                "parameters": [
                    {"type": "integer", "description": "Cat ID", "name": "id", "in": "path", "required": true},
                    {"type": "file", "description": "JPEG, PNG, WebP or GIF image", "name": "photo", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.CatResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "403": {"description": "not the owner", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "503": {"description": "photo storage is not configured", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/voting/{cat_id}/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["voting"],
                "summary": "List the votes cast for a cat",
                "parameters": [
                    {"type": "integer", "description": "Cat ID", "name": "cat_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/http.VoteResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Records the caller's single mark (0-5) for a cat and returns the recomputed rating.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["voting"],
                "summary": "Rate a cat",
                "parameters": [
                    {"type": "integer", "description": "Cat ID", "name": "cat_id", "in": "path", "required": true},
                    {"description": "Mark", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.voteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.VoteResultResponse"}},
                    "400": {"description": "value out of range", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "cat not found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "409": {"description": "already voted", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "auth.Pair": {
            "type": "object",
            "properties": {
                "access": {"type": "string"},
                "refresh": {"type": "string"}
            }
        },
        "http.AccessResponse": {
            "type": "object",
            "properties": {
                "access": {"type": "string"}
            }
        },
        "http.BreedResponse": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "http.CatResponse": {
            "type": "object",
            "properties": {
                "age": {"type": "integer"},
                "breed": {"type": "integer"},
                "breed_info": {"$ref": "#/definitions/http.BreedResponse"},
                "color": {"type": "string"},
                "created_at": {"type": "string"},
                "description": {"type": "string"},
                "has_photo": {"type": "boolean"},
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "owner": {"type": "integer"},
                "owner_info": {"$ref": "#/definitions/http.OwnerResponse"},
                "rating": {"type": "number"},
                "total_votes": {"type": "integer"},
                "updated_at": {"type": "string"}
            }
        },
        "http.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "http.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "http.OwnerResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "username": {"type": "string"}
            }
        },
        "http.VoteResponse": {
            "type": "object",
            "properties": {
                "cat": {"type": "integer"},
                "created_at": {"type": "string"},
                "id": {"type": "integer"},
                "user": {"type": "integer"},
                "value": {"type": "integer"}
            }
        },
        "http.VoteResultResponse": {
            "type": "object",
            "properties": {
                "cat": {"type": "integer"},
                "message": {"type": "string"},
                "rating": {"type": "number"},
                "total_votes": {"type": "integer"}
            }
        },
        "http.breedRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "description": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "http.catPatchRequest": {
            "type": "object",
            "properties": {
                "age": {"type": "integer", "minimum": 0},
                "breed": {"type": "integer"},
                "color": {"type": "string"},
                "description": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "http.catRequest": {
            "type": "object",
            "required": ["age", "breed", "color", "description", "name"],
            "properties": {
                "age": {"type": "integer", "minimum": 0},
                "breed": {"type": "integer"},
                "color": {"type": "string"},
                "description": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "http.logoutRequest": {
            "type": "object",
            "properties": {
                "refresh_token": {"type": "string"}
            }
        },
        "http.refreshRequest": {
            "type": "object",
            "required": ["refresh"],
            "properties": {
                "refresh": {"type": "string"}
            }
        },
        "http.signUpRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "http.voteRequest": {
            "type": "object",
            "required": ["value"],
            "properties": {
                "value": {"type": "integer", "minimum": 0, "maximum": 5}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the access token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Cat Exhibition API",
	Description:      "Cats, breeds and one-vote-per-user ratings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
