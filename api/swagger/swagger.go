package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Masadr 2040 Booking API",
        "description": "Learning resource center timetable booking service",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Bookings", "description": "Booking admission and management"},
        {"name": "Schedule", "description": "Booking weeks and timetable grid"},
        {"name": "Stats", "description": "Aggregated booking statistics"},
        {"name": "Sync", "description": "Remote document synchronization"},
        {"name": "Gate", "description": "Protected-action password gate"},
        {"name": "Export", "description": "CSV and PDF downloads"}
    ],
    "paths": {
        "/bookings": {
            "get": {
                "tags": ["Bookings"],
                "summary": "List bookings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Gate required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Bookings"],
                "summary": "Create booking",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BookingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Quota or slot conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/bookings/{id}": {
            "get": {
                "tags": ["Bookings"],
                "summary": "Get booking",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Bookings"],
                "summary": "Update booking",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BookingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Bookings"],
                "summary": "Delete booking",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "401": {"description": "Gate required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/bookings/precheck": {
            "post": {
                "tags": ["Bookings"],
                "summary": "Check quota headroom",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PrecheckRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/roster": {
            "get": {
                "tags": ["Bookings"],
                "summary": "Reference data for the booking form",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/weeks": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Selectable booking weeks",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/slots": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Timetable grid for a week",
                "parameters": [
                    {"name": "week", "in": "query", "type": "string", "enum": ["current", "next"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/stats": {
            "get": {
                "tags": ["Stats"],
                "summary": "Booking statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Gate required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sync/status": {
            "get": {
                "tags": ["Sync"],
                "summary": "Current sync status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sync/refresh": {
            "post": {
                "tags": ["Sync"],
                "summary": "Force an immediate remote pull",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sync/config": {
            "get": {
                "tags": ["Sync"],
                "summary": "Active remote endpoint with the access key masked",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SyncConfigResponse"}},
                    "401": {"description": "Gate required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Sync"],
                "summary": "Point sync at a different remote document",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SyncConfigRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Gate required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/gate/unlock": {
            "post": {
                "tags": ["Gate"],
                "summary": "Exchange the gate password for a short-lived token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UnlockRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Wrong password", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/export/bookings": {
            "get": {
                "tags": ["Export"],
                "summary": "Download the booking list",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"},
                    "401": {"description": "Gate required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/export/stats": {
            "get": {
                "tags": ["Export"],
                "summary": "Download the statistics overview",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"},
                    "401": {"description": "Gate required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "BookingRequest": {
            "type": "object",
            "required": ["day", "period", "teacher", "subject", "lesson", "grade", "class"],
            "properties": {
                "day": {"type": "string", "example": "2024-06-10"},
                "period": {"type": "integer", "minimum": 1, "maximum": 7},
                "teacher": {"type": "string"},
                "subject": {"type": "string"},
                "lesson": {"type": "string"},
                "grade": {"type": "string"},
                "class": {"type": "string"}
            }
        },
        "PrecheckRequest": {
            "type": "object",
            "required": ["teacher", "day"],
            "properties": {
                "teacher": {"type": "string"},
                "day": {"type": "string"}
            }
        },
        "SyncConfigRequest": {
            "type": "object",
            "required": ["provider", "doc_id"],
            "properties": {
                "provider": {"type": "string", "enum": ["npoint", "jsonbin"]},
                "doc_id": {"type": "string"},
                "access_key": {"type": "string"},
                "base_url": {"type": "string"}
            }
        },
        "SyncConfigResponse": {
            "type": "object",
            "properties": {
                "provider": {"type": "string"},
                "doc_id": {"type": "string"},
                "access_key": {"type": "string", "description": "masked, write-only"},
                "base_url": {"type": "string"}
            }
        },
        "UnlockRequest": {
            "type": "object",
            "required": ["pin"],
            "properties": {
                "pin": {"type": "string"}
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
