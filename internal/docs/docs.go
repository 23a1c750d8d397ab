// Package docs contiene la especificación OpenAPI servida en /swagger.
// Se regenera con `swag init -g cmd/api/main.go -o internal/docs`.
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
        "/token": {
            "post": {
                "description": "Valida usuario y contraseña del clínico y devuelve un access token y un refresh token.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Obtener tokens",
                "parameters": [
                    {"description": "Credenciales", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/session.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.TokenPair"}},
                    "400": {"description": "invalid json / validación", "schema": {"type": "string"}},
                    "401": {"description": "invalid username or password", "schema": {"type": "string"}}
                }
            }
        },
        "/token/refresh": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Renovar access token",
                "parameters": [
                    {"description": "Refresh token", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/session.refreshRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/session.refreshResponse"}},
                    "401": {"description": "invalid token", "schema": {"type": "string"}}
                }
            }
        },
        "/patients": {
            "get": {
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "Listar pacientes",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev, ID de usuario para depuración", "name": "X-Debug-User-ID", "in": "header"},
                    {"type": "string", "description": "Bearer token en producción", "name": "Authorization", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/patients.patientResponse"}}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}}
                }
            },
            "post": {
                "description": "Registra un neonato. dob (YYYY-MM-DD) y ga (semanas) se usan para calcular DOL y PMA de cada entrada.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "Registrar paciente",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev, ID de usuario para depuración", "name": "X-Debug-User-ID", "in": "header"},
                    {"type": "string", "description": "Bearer token en producción", "name": "Authorization", "in": "header"},
                    {"description": "Datos del paciente", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/patients.createPatientRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/patients.patientResponse"}},
                    "400": {"description": "invalid json / validación", "schema": {"type": "string"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}},
                    "409": {"description": "patient_id already registered", "schema": {"type": "string"}}
                }
            }
        },
        "/patients/{patientID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "Ver paciente con sus entradas",
                "parameters": [
                    {"type": "string", "description": "ID del paciente", "name": "patientID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/patients.patientResponse"}},
                    "404": {"description": "patient not found", "schema": {"type": "string"}}
                }
            },
            "patch": {
                "description": "PATCH parcial: solo se modifican los campos enviados.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "Actualizar paciente",
                "parameters": [
                    {"type": "string", "description": "ID del paciente", "name": "patientID", "in": "path", "required": true},
                    {"description": "Campos a modificar", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/patients.createPatientRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/patients.patientResponse"}},
                    "400": {"description": "invalid json / validación", "schema": {"type": "string"}},
                    "404": {"description": "patient not found", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "description": "Elimina el paciente y todas sus entradas diarias.",
                "tags": ["patients"],
                "summary": "Eliminar paciente",
                "parameters": [
                    {"type": "string", "description": "ID del paciente", "name": "patientID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "patient not found", "schema": {"type": "string"}}
                }
            }
        },
        "/patients/{patientID}/entries": {
            "get": {
                "description": "Vista de tabla: entradas sin agregar, ordenadas por fecha.",
                "produces": ["application/json"],
                "tags": ["entries"],
                "summary": "Listar entradas de un paciente",
                "parameters": [
                    {"type": "string", "description": "ID del paciente", "name": "patientID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/progress.Record"}}},
                    "404": {"description": "patient not found", "schema": {"type": "string"}}
                }
            },
            "post": {
                "description": "Registra mediciones del día. DOL y PMA se calculan con el DOB y la GA del paciente; si no son válidos responde 400.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["entries"],
                "summary": "Registrar entrada diaria",
                "parameters": [
                    {"type": "string", "description": "ID del paciente", "name": "patientID", "in": "path", "required": true},
                    {"description": "Mediciones del día", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/progress.Record"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/progress.Record"}},
                    "400": {"description": "invalid json / validación / patient DOB or GA is missing or invalid", "schema": {"type": "string"}},
                    "404": {"description": "patient not found", "schema": {"type": "string"}}
                }
            }
        },
        "/patients/{patientID}/entries/{entryID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["entries"],
                "summary": "Ver una entrada",
                "parameters": [
                    {"type": "string", "description": "ID del paciente", "name": "patientID", "in": "path", "required": true},
                    {"type": "string", "description": "ID de la entrada", "name": "entryID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/progress.Record"}},
                    "404": {"description": "entry not found", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "tags": ["entries"],
                "summary": "Eliminar una entrada",
                "parameters": [
                    {"type": "string", "description": "ID del paciente", "name": "patientID", "in": "path", "required": true},
                    {"type": "string", "description": "ID de la entrada", "name": "entryID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "entry not found", "schema": {"type": "string"}}
                }
            }
        },
        "/patients/{patientID}/progress": {
            "get": {
                "description": "Ordena, agrega (daily, weekly o monthly) y proyecta las entradas del paciente. Sin entradas con fecha válida responde {\"no_data\": true}.",
                "produces": ["application/json"],
                "tags": ["progress"],
                "summary": "Serie de progreso del paciente",
                "parameters": [
                    {"type": "string", "description": "ID del paciente", "name": "patientID", "in": "path", "required": true},
                    {"type": "string", "description": "daily | weekly | monthly (default daily)", "name": "aggregation", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/progress.Series"}},
                    "400": {"description": "aggregation must be daily, weekly or monthly", "schema": {"type": "string"}},
                    "404": {"description": "patient not found", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "auth.TokenPair": {
            "type": "object",
            "properties": {
                "access": {"type": "string"},
                "refresh": {"type": "string"}
            }
        },
        "session.loginRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "session.refreshRequest": {
            "type": "object",
            "required": ["refresh"],
            "properties": {
                "refresh": {"type": "string"}
            }
        },
        "session.refreshResponse": {
            "type": "object",
            "properties": {
                "access": {"type": "string"}
            }
        },
        "patients.createPatientRequest": {
            "type": "object",
            "required": ["dob", "ga", "name", "patient_id"],
            "properties": {
                "aga_sga_lga": {"type": "string", "enum": ["AGA", "SGA", "LGA"]},
                "dob": {"type": "string", "example": "2024-03-01"},
                "ga": {"type": "string", "example": "28.5"},
                "name": {"type": "string"},
                "patient_id": {"type": "string"},
                "sex": {"type": "string", "enum": ["male", "female", "unknown"]},
                "tob": {"type": "string", "example": "06:30"},
                "weight": {"type": "string"}
            }
        },
        "patients.patientResponse": {
            "type": "object",
            "properties": {
                "aga_sga_lga": {"type": "string"},
                "created_at": {"type": "string"},
                "created_by": {"type": "string"},
                "dob": {"type": "string"},
                "ga": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "patient_id": {"type": "string"},
                "sex": {"type": "string"},
                "tob": {"type": "string"},
                "updated_at": {"type": "string"},
                "weight": {"type": "string"}
            }
        },
        "progress.Record": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "date": {"type": "string", "example": "2024-03-05"},
                "weight": {"type": "number"},
                "kmc": {"type": "number"},
                "cal": {"type": "number"},
                "dol": {"type": "number"},
                "protein": {"type": "number"},
                "tfr": {"type": "number"},
                "feeds": {"type": "number"},
                "pma": {"type": "number"},
                "calcium": {"type": "number"},
                "phosphorus": {"type": "number"},
                "vit_d": {"type": "number"},
                "iron": {"type": "number"},
                "zinc": {"type": "number"},
                "caffeine": {"type": "number"},
                "hmf": {"type": "number"},
                "nns": {"type": "number"},
                "piomi": {"type": "number"},
                "mode_of_feeding": {"type": "string"},
                "gain_loss": {"type": "string"},
                "type_of_milk": {"type": "string"},
                "early_intervention": {"type": "string"},
                "resp_support": {"type": "string"},
                "desaturations": {"type": "string"},
                "acute_events": {"type": "string"}
            }
        },
        "progress.Metric": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "value": {"type": "string"}
            }
        },
        "progress.Summary": {
            "type": "object",
            "properties": {
                "available": {"type": "boolean"},
                "date": {"type": "string"},
                "dol": {"type": "integer"},
                "pma": {"type": "string"}
            }
        },
        "progress.Series": {
            "type": "object",
            "properties": {
                "level": {"type": "string", "enum": ["daily", "weekly", "monthly"]},
                "points": {"type": "array", "items": {"type": "object"}},
                "metrics": {"type": "array", "items": {"$ref": "#/definitions/progress.Metric"}},
                "table": {"type": "array", "items": {"$ref": "#/definitions/progress.Record"}},
                "summary": {"$ref": "#/definitions/progress.Summary"},
                "milk_steps": {"type": "object"},
                "diagnostics": {"type": "array", "items": {"type": "object"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "NICU Progress API",
	Description:      "Registro diario de neonatos y series de progreso (daily, weekly, monthly).",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
