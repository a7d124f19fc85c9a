package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Selyo Registrar API",
        "description": "Student registrar request portal backend",
        "version": "0.1.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Authentication"},
        {"name": "Requests", "description": "Student request submission and tracking"},
        {"name": "Admin", "description": "Request review, status workflow and appointments"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate a portal account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Token issued"},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/requests/types": {
            "get": {
                "tags": ["Requests"],
                "summary": "Request type catalog",
                "responses": {
                    "200": {"description": "Catalog keyed by request type"}
                }
            }
        },
        "/requests": {
            "get": {
                "tags": ["Requests"],
                "summary": "List the caller's requests",
                "responses": {
                    "200": {"description": "Requests, newest first"}
                }
            },
            "post": {
                "tags": ["Requests"],
                "summary": "Submit a new request",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "requestType", "in": "formData", "type": "string", "required": true},
                    {"name": "reason", "in": "formData", "type": "string"},
                    {"name": "documents", "in": "formData", "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Created request"},
                    "400": {"description": "Validation failure", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/requests/{id}": {
            "get": {
                "tags": ["Requests"],
                "summary": "Fetch one of the caller's requests",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Request with appointment details"},
                    "404": {"description": "Unknown or foreign request", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/requests/announcements": {
            "get": {
                "tags": ["Requests"],
                "summary": "List active announcements",
                "responses": {
                    "200": {"description": "Active announcements, newest first"}
                }
            }
        },
        "/admin/requests": {
            "get": {
                "tags": ["Admin"],
                "summary": "List all requests",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Requests, newest first"}
                }
            }
        },
        "/admin/requests/{id}": {
            "get": {
                "tags": ["Admin"],
                "summary": "Fetch one request",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Request with student and appointment"},
                    "404": {"description": "Unknown request", "schema": {"$ref": "#/definitions/APIError"}}
                }
            },
            "put": {
                "tags": ["Admin"],
                "summary": "Update a request's status",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated request"},
                    "400": {"description": "Unknown status or missing rejection reason", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/admin/requests/{id}/claim-slip": {
            "get": {
                "tags": ["Admin"],
                "summary": "Download the printable claim slip",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "PDF claim slip"}
                }
            }
        },
        "/admin/slots": {
            "get": {
                "tags": ["Admin"],
                "summary": "Available appointment slots for a date",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "required": true, "description": "YYYY-MM-DD"}
                ],
                "responses": {
                    "200": {"description": "Unbooked slots in catalog order"}
                }
            }
        },
        "/admin/appointments": {
            "post": {
                "tags": ["Admin"],
                "summary": "Schedule an appointment for a request",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScheduleAppointmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created appointment"},
                    "409": {"description": "Slot no longer available", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "UpdateStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "adminComment": {"type": "string"}
            },
            "required": ["status"]
        },
        "ScheduleAppointmentRequest": {
            "type": "object",
            "properties": {
                "requestId": {"type": "string"},
                "date": {"type": "string"},
                "timeSlot": {"type": "string"},
                "notes": {"type": "string"}
            },
            "required": ["requestId", "date", "timeSlot"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
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
