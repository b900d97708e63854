// Package docs registers the OpenAPI description of the review API with swag
// so the fiber swagger handler can serve it.
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
            "get": {
                "tags": [
                    "health"
                ],
                "summary": "Health Check",
                "produces": [
                    "text/plain"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "string"
                        }
                    }
                },
                "description": "Check if the server is up"
            }
        },
        "/health/ready": {
            "get": {
                "tags": [
                    "health"
                ],
                "summary": "Readiness Check",
                "produces": [
                    "text/plain"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "503": {
                        "description": "Database unreachable",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                },
                "description": "Check that the database answers"
            }
        },
        "/api/chains": {
            "get": {
                "tags": [
                    "chains"
                ],
                "summary": "List approval chains",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/chain.Definition"
                            }
                        }
                    }
                },
                "description": "List the authority chain configured for every workflow type",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/chains/{type}": {
            "get": {
                "tags": [
                    "chains"
                ],
                "summary": "Get approval chain",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/chain.Definition"
                        }
                    },
                    "404": {
                        "description": "Unknown workflow type",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Workflow type",
                        "name": "type",
                        "in": "path",
                        "required": true
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/quorum/evaluate": {
            "post": {
                "tags": [
                    "quorum"
                ],
                "summary": "Evaluate quorum",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Quorum result",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "400": {
                        "description": "Invalid request body",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "422": {
                        "description": "Invalid quorum input",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                },
                "description": "Compute turnout and whether the required participation threshold is met",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Query",
                        "name": "query",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/quorum.Query"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/submissions": {
            "post": {
                "tags": [
                    "submissions"
                ],
                "summary": "Register a submission",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/review.Submission"
                        }
                    },
                    "400": {
                        "description": "Invalid request body",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "422": {
                        "description": "Invalid submission",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Submission",
                        "name": "submission",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/review.CreateSubmissionInput"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/submissions/{id}/review": {
            "get": {
                "tags": [
                    "submissions"
                ],
                "summary": "Get the review state of a submission",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/review.ReviewState"
                        }
                    },
                    "404": {
                        "description": "Submission not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Submission ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "submissions"
                ],
                "summary": "Start the approval chain for a submission",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "409": {
                        "description": "Review already started",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "422": {
                        "description": "Blocking validation issues",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Submission ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/submissions/{id}/decisions": {
            "post": {
                "tags": [
                    "submissions"
                ],
                "summary": "Record an authority decision",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "403": {
                        "description": "Not the authority for this step",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "409": {
                        "description": "Wrong step or finished review",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "422": {
                        "description": "Quorum not met",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                },
                "description": "The caller's role must match the authority of the pending step",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Submission ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Decision",
                        "name": "decision",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/review.DecisionInput"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/submissions/{id}/issues": {
            "post": {
                "tags": [
                    "issues"
                ],
                "summary": "Record a validation issue",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Submission ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Issue",
                        "name": "issue",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/review.AddIssueInput"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "get": {
                "tags": [
                    "issues"
                ],
                "summary": "List validation issues of a submission",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/validation.Issue"
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Submission ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "warning or error",
                        "name": "severity",
                        "in": "query"
                    },
                    {
                        "type": "boolean",
                        "description": "Resolved flag",
                        "name": "resolved",
                        "in": "query"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/submissions/{id}/import": {
            "post": {
                "tags": [
                    "issues"
                ],
                "summary": "Import a membership list workbook",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/validation.IngestReport"
                        }
                    }
                },
                "consumes": [
                    "multipart/form-data"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Submission ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "file",
                        "description": "xlsx membership list",
                        "name": "file",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Declared member count",
                        "name": "declared_total",
                        "in": "formData"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/issues/{id}/resolve": {
            "post": {
                "tags": [
                    "issues"
                ],
                "summary": "Mark a validation issue resolved",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                },
                "description": "Resolving an already resolved issue succeeds",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Issue ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/audit": {
            "get": {
                "tags": [
                    "audit"
                ],
                "summary": "List audit logs",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/models.AuditLog"
                            }
                        }
                    }
                },
                "description": "Paginated audit trail of submissions, issues and approval decisions",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Feature (review, validation)",
                        "name": "module",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Submission or issue ID",
                        "name": "record_id",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Audit action",
                        "name": "action",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Page",
                        "name": "page",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Page size",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/notifications": {
            "get": {
                "tags": [
                    "notifications"
                ],
                "summary": "List notifications for the caller and the caller's role",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Page",
                        "name": "page",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Page size",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/notifications/{id}/read": {
            "put": {
                "tags": [
                    "notifications"
                ],
                "summary": "Mark a notification as read",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "404": {
                        "description": "Notification not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Notification ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        }
    },
    "definitions": {
        "chain.AuthorityStep": {
            "type": "object",
            "properties": {
                "step_index": {
                    "type": "integer"
                },
                "authority_role": {
                    "type": "string"
                },
                "display_label": {
                    "type": "string"
                }
            }
        },
        "chain.Definition": {
            "type": "object",
            "properties": {
                "workflow_type": {
                    "type": "string"
                },
                "steps": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/chain.AuthorityStep"
                    }
                },
                "quorum_percentage": {
                    "type": "number"
                }
            }
        },
        "quorum.Query": {
            "type": "object",
            "properties": {
                "eligible_count": {
                    "type": "integer"
                },
                "present_count": {
                    "type": "integer"
                },
                "required_percentage": {
                    "type": "number"
                }
            }
        },
        "quorum.Result": {
            "type": "object",
            "properties": {
                "turnout_percentage": {
                    "type": "number"
                },
                "is_met": {
                    "type": "boolean"
                },
                "shortfall_count": {
                    "type": "integer"
                }
            }
        },
        "review.Turnout": {
            "type": "object",
            "properties": {
                "eligible": {
                    "type": "integer"
                },
                "present": {
                    "type": "integer"
                }
            }
        },
        "review.CreateSubmissionInput": {
            "type": "object",
            "properties": {
                "kind": {
                    "type": "string",
                    "enum": [
                        "membership_list",
                        "candidate",
                        "election_result",
                        "workflow_item"
                    ]
                },
                "workflow_type": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "union_ref": {
                    "type": "string"
                },
                "turnout": {
                    "$ref": "#/definitions/review.Turnout"
                }
            }
        },
        "review.Submission": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "kind": {
                    "type": "string"
                },
                "workflow_type": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "union_ref": {
                    "type": "string"
                },
                "turnout": {
                    "$ref": "#/definitions/review.Turnout"
                },
                "instance_id": {
                    "type": "string"
                },
                "submitted_by": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "review.DecisionInput": {
            "type": "object",
            "properties": {
                "step_index": {
                    "type": "integer"
                },
                "decision": {
                    "type": "string",
                    "enum": [
                        "approved",
                        "rejected"
                    ]
                },
                "comments": {
                    "type": "string"
                }
            }
        },
        "review.AddIssueInput": {
            "type": "object",
            "properties": {
                "affected_item_ref": {
                    "type": "string"
                },
                "field_name": {
                    "type": "string"
                },
                "issue_type": {
                    "type": "string",
                    "enum": [
                        "missing_data",
                        "duplicate",
                        "inconsistent_total",
                        "format_error"
                    ]
                },
                "severity": {
                    "type": "string",
                    "enum": [
                        "warning",
                        "error"
                    ]
                },
                "description": {
                    "type": "string"
                }
            }
        },
        "approval.StepDecision": {
            "type": "object",
            "properties": {
                "step_index": {
                    "type": "integer"
                },
                "decision": {
                    "type": "string"
                },
                "decided_by": {
                    "type": "string"
                },
                "decided_at": {
                    "type": "string"
                },
                "comments": {
                    "type": "string"
                }
            }
        },
        "approval.AggregateStatus": {
            "type": "object",
            "properties": {
                "kind": {
                    "type": "string",
                    "enum": [
                        "pending_step",
                        "approved",
                        "rejected"
                    ]
                },
                "step": {
                    "type": "integer"
                }
            }
        },
        "approval.Instance": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "workflow_type": {
                    "type": "string"
                },
                "submission_ref": {
                    "type": "string"
                },
                "decisions": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/approval.StepDecision"
                    }
                },
                "status": {
                    "$ref": "#/definitions/approval.AggregateStatus"
                },
                "version": {
                    "type": "integer"
                },
                "created_at": {
                    "type": "string"
                },
                "completed_at": {
                    "type": "string"
                }
            }
        },
        "validation.Issue": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "submission_ref": {
                    "type": "string"
                },
                "affected_item_ref": {
                    "type": "string"
                },
                "field_name": {
                    "type": "string"
                },
                "issue_type": {
                    "type": "string"
                },
                "severity": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "resolved": {
                    "type": "boolean"
                },
                "created_at": {
                    "type": "string"
                },
                "resolved_at": {
                    "type": "string"
                }
            }
        },
        "validation.IngestReport": {
            "type": "object",
            "properties": {
                "rows": {
                    "type": "integer"
                },
                "issues": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/validation.Issue"
                    }
                }
            }
        },
        "review.ReviewState": {
            "type": "object",
            "properties": {
                "submission": {
                    "$ref": "#/definitions/review.Submission"
                },
                "instance": {
                    "$ref": "#/definitions/approval.Instance"
                },
                "issues": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/validation.Issue"
                    }
                },
                "current_step": {
                    "$ref": "#/definitions/chain.AuthorityStep"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "draft",
                        "under_review",
                        "approved",
                        "rejected"
                    ]
                },
                "quorum": {
                    "$ref": "#/definitions/quorum.Result"
                }
            }
        },
        "models.AuditLog": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "action": {
                    "type": "string"
                },
                "module": {
                    "type": "string"
                },
                "record_id": {
                    "type": "string"
                },
                "actor_id": {
                    "type": "string"
                },
                "changes": {
                    "type": "object",
                    "additionalProperties": true
                },
                "timestamp": {
                    "type": "string"
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
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
	Title:            "Union Registration Review API",
	Description:      "Sequential multi-authority review of union submissions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
