package insight

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mohammed4122002/workflow-pro-backend/internal/report"
)

const insightSystemPrompt = `You are an analytics assistant for WorkFlow Pro.
You MUST use only the provided report snapshots (aggregated KPIs).
Do NOT infer or invent data. If data is insufficient, state "Not enough snapshot data".
Do NOT include any PII. No names, emails, or per-employee salaries.
Return ONLY valid JSON matching the schema provided.`

const chatSystemPrompt = `You are a strict analytics assistant for WorkFlow Pro.
You MUST answer ONLY using the provided report snapshots.
Do NOT invent data or include PII.
If snapshots are insufficient, respond with "Not enough snapshot data".
Include citations with snapshotId and createdAt for any claims.
Return ONLY valid JSON matching the schema provided.`

var insightSchema = ResponseSchema{
	Name: "insights_response",
	Schema: json.RawMessage(`{
		"type": "object",
		"additionalProperties": false,
		"properties": {
			"type": {"type": "string"},
			"rangeFrom": {"type": ["string", "null"]},
			"rangeTo": {"type": ["string", "null"]},
			"insights": {
				"type": "array",
				"items": {
					"type": "object",
					"additionalProperties": false,
					"properties": {
						"title": {"type": "string"},
						"detail": {"type": "string"},
						"severity": {"type": "string"}
					},
					"required": ["title", "detail", "severity"]
				}
			},
			"recommendations": {
				"type": "array",
				"items": {
					"type": "object",
					"additionalProperties": false,
					"properties": {
						"title": {"type": "string"},
						"detail": {"type": "string"}
					},
					"required": ["title", "detail"]
				}
			},
			"generatedAt": {"type": "string"}
		},
		"required": ["type", "insights", "recommendations", "generatedAt"]
	}`),
}

var chatSchema = ResponseSchema{
	Name: "chat_response",
	Schema: json.RawMessage(`{
		"type": "object",
		"additionalProperties": false,
		"properties": {
			"answer": {"type": "string"},
			"citations": {
				"type": "array",
				"items": {
					"type": "object",
					"additionalProperties": false,
					"properties": {
						"snapshotId": {"type": "string"},
						"type": {"type": "string"},
						"createdAt": {"type": "string"}
					},
					"required": ["snapshotId", "type", "createdAt"]
				}
			},
			"followUps": {"type": "array", "items": {"type": "string"}}
		},
		"required": ["answer", "citations", "followUps"]
	}`),
}

type snapshotContext struct {
	ID        string          `json:"id"`
	Type      report.Type     `json:"type"`
	RangeFrom *string         `json:"rangeFrom"`
	RangeTo   *string         `json:"rangeTo"`
	CreatedAt string          `json:"createdAt"`
	Data      json.RawMessage `json:"data"`
}

func buildSnapshotContext(snapshots []report.ReportSnapshot) []snapshotContext {
	ctxs := make([]snapshotContext, len(snapshots))
	for i, s := range snapshots {
		sc := snapshotContext{
			ID:        s.ID.String(),
			Type:      s.Type,
			CreatedAt: s.CreatedAt.UTC().Format(time.RFC3339),
			Data:      s.Data,
		}
		if s.RangeFrom != nil {
			v := s.RangeFrom.Format("2006-01-02")
			sc.RangeFrom = &v
		}
		if s.RangeTo != nil {
			v := s.RangeTo.Format("2006-01-02")
			sc.RangeTo = &v
		}
		ctxs[i] = sc
	}
	return ctxs
}

func describeRange(rangeFrom, rangeTo *string) string {
	if rangeFrom != nil && rangeTo != nil {
		return fmt.Sprintf("Requested range: %s to %s", *rangeFrom, *rangeTo)
	}
	return "Requested range: not provided"
}

func buildInsightUserPrompt(reportType string, rangeFrom, rangeTo *string, snapshots []snapshotContext) string {
	body, _ := json.MarshalIndent(snapshots, "", "  ")
	return strings.Join([]string{
		fmt.Sprintf("Report type: %s", reportType),
		describeRange(rangeFrom, rangeTo),
		fmt.Sprintf("Snapshots (%d):", len(snapshots)),
		string(body),
	}, "\n")
}

func buildChatUserPrompt(question, reportType string, rangeFrom, rangeTo *string, snapshots []snapshotContext) string {
	body, _ := json.MarshalIndent(snapshots, "", "  ")
	return strings.Join([]string{
		fmt.Sprintf("Question: %s", question),
		fmt.Sprintf("Report type: %s", reportType),
		describeRange(rangeFrom, rangeTo),
		fmt.Sprintf("Snapshots (%d):", len(snapshots)),
		string(body),
	}, "\n")
}
