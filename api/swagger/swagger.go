package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Tutor Dash API",
        "description": "Scheduling dashboard gateway fronting the legacy booking API",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Teachers", "description": "Normalized teacher roster"},
        {"name": "Grid", "description": "Clustered scheduling grid"},
        {"name": "Availability", "description": "Teacher availability declarations"},
        {"name": "Resolver", "description": "Booking-form eligibility resolution"},
        {"name": "Cache", "description": "Explicit cache invalidation"}
    ],
    "paths": {
        "/teachers": {
            "get": {
                "tags": ["Teachers"],
                "summary": "List teachers",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grid": {
            "get": {
                "tags": ["Grid"],
                "summary": "Get the scheduling grid",
                "parameters": [
                    {"name": "start", "in": "query", "required": true, "type": "string"},
                    {"name": "end", "in": "query", "required": true, "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "type", "in": "query", "type": "string"},
                    {"name": "teacherId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability": {
            "get": {
                "tags": ["Availability"],
                "summary": "List availability declarations",
                "parameters": [
                    {"name": "start", "in": "query", "required": true, "type": "string"},
                    {"name": "end", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/resolver/sessions": {
            "post": {
                "tags": ["Resolver"],
                "summary": "Open a booking-form resolution session",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/resolver/sessions/{id}/eligibility": {
            "post": {
                "tags": ["Resolver"],
                "summary": "Resolve teacher eligibility for a target interval",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EligibilityRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "410": {"description": "Session Expired", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/cache/invalidations": {
            "post": {
                "tags": ["Cache"],
                "summary": "Invalidate cached upstream data",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/InvalidationRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Teacher": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "status": {"type": "string"},
                "tier": {"type": "string", "enum": ["UNRESTRICTED", "AVAILABILITY_CHECKED"]}
            }
        },
        "TimeInterval": {
            "type": "object",
            "properties": {
                "start_minute": {"type": "integer"},
                "end_minute": {"type": "integer"}
            }
        },
        "ScheduleRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "teacher_id": {"type": "string"},
                "student_ids": {"type": "array", "items": {"type": "string"}},
                "date": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "interval": {"$ref": "#/definitions/TimeInterval"},
                "location": {"type": "string"},
                "status": {"type": "string"},
                "type_label": {"type": "string"}
            }
        },
        "Cluster": {
            "type": "object",
            "properties": {
                "records": {"type": "array", "items": {"$ref": "#/definitions/ScheduleRecord"}},
                "min_start": {"type": "integer"},
                "max_end": {"type": "integer"}
            }
        },
        "EligibilityRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "startTime": {"type": "string"},
                "endTime": {"type": "string"},
                "excludeRecordId": {"type": "string"}
            },
            "required": ["date"]
        },
        "EligibilityResponse": {
            "type": "object",
            "properties": {
                "busy": {"type": "array", "items": {"type": "string"}},
                "unavailable": {"type": "array", "items": {"type": "string"}},
                "defaultTeacherId": {"type": "string"},
                "generation": {"type": "integer"},
                "superseded": {"type": "boolean"},
                "degraded": {"type": "boolean"},
                "warning": {"type": "string"}
            }
        },
        "InvalidationRequest": {
            "type": "object",
            "properties": {
                "scope": {"type": "string", "enum": ["bookings", "availability", "roster", "all"]}
            },
            "required": ["scope"]
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
