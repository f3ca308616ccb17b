package models

import (
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Documents written by older versions of the app carry inconsistent field
// names (Title/title/name, status/Status/state, taskStatus) and amounts stored
// as strings. Everything in this file converts a raw BSON document into one
// canonical struct so that nothing downstream has to care.

// CoerceNumber converts any stored representation of a number to float64.
// Unparseable or absent values coerce to 0, never an error.
func CoerceNumber(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case primitive.Decimal128:
		f, err := strconv.ParseFloat(n.String(), 64)
		if err != nil {
			return 0
		}
		return f
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(strings.TrimPrefix(n, "$"), ",", ""))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// CoerceBool accepts bool, numeric 0/1 and "true"/"yes" strings.
func CoerceBool(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		s := strings.ToLower(strings.TrimSpace(b))
		return s == "true" || s == "yes" || s == "1"
	case int, int32, int64, float64:
		return CoerceNumber(v) != 0
	default:
		return false
	}
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDate accepts a store-native timestamp or a date string in any of the
// layouts the app has historically written. The bool reports validity.
func ParseDate(v interface{}) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		return d, true
	case primitive.DateTime:
		return d.Time(), true
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// CoerceDateString normalizes any stored date representation to YYYY-MM-DD,
// or "" when the value is absent or unparsable.
func CoerceDateString(v interface{}) string {
	t, ok := ParseDate(v)
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}

// firstString returns the first non-empty string value among the aliases.
func firstString(doc bson.M, keys ...string) string {
	for _, k := range keys {
		if v, ok := doc[k]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

func firstValue(doc bson.M, keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := doc[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func coerceID(v interface{}) string {
	switch id := v.(type) {
	case string:
		return id
	case primitive.ObjectID:
		return id.Hex()
	case int32:
		return strconv.Itoa(int(id))
	case int64:
		return strconv.FormatInt(id, 10)
	case float64:
		return strconv.FormatInt(int64(id), 10)
	default:
		return ""
	}
}

func normalizeStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return StatusActive
	case "under review", "in review":
		return StatusUnderReview
	case "approved":
		return StatusApproved
	case "pending":
		return StatusPending
	case "rejected", "declined":
		return StatusRejected
	case "completed", "complete":
		return StatusCompleted
	default:
		return StatusUnknown
	}
}

// NormalizeGrant maps a raw grant document onto the canonical Grant shape.
func NormalizeGrant(doc bson.M) Grant {
	g := Grant{
		ID:                          coerceID(doc["_id"]),
		Title:                       firstString(doc, "title", "Title", "name", "Name"),
		Organization:                firstString(doc, "organization", "Organization", "org"),
		Status:                      normalizeStatus(firstString(doc, "status", "Status", "state")),
		FiscalYear:                  firstString(doc, "fiscal_year", "fiscalYear", "FiscalYear"),
		ApplicationDate:             CoerceDateString(firstValue(doc, "application_date", "applicationDate", "Application Date")),
		AnticipatedNotificationDate: CoerceDateString(firstValue(doc, "anticipated_notification_date", "anticipatedNotificationDate", "Anticipated Notification Date")),
		ReportDeadline:              CoerceDateString(firstValue(doc, "report_deadline", "reportDeadline", "Report Deadline")),
		DateAwarded:                 CoerceDateString(firstValue(doc, "date_awarded", "dateAwarded", "Date Awarded")),
		ReportSubmitted:             CoerceDateString(firstValue(doc, "report_submitted", "reportSubmitted", "Report Submitted")),
	}

	if raw, ok := doc["attachments"].(primitive.A); ok {
		for _, item := range raw {
			att, ok := item.(bson.M)
			if !ok {
				continue
			}
			fileID, _ := att["file_id"].(primitive.ObjectID)
			name, _ := att["filename"].(string)
			g.Attachments = append(g.Attachments, Attachment{FileID: fileID, Filename: name})
		}
	}

	if meta, ok := doc["metadata"].(bson.M); ok {
		g.Metadata.CreatedBy = firstString(meta, "created_by")
		g.Metadata.UpdatedBy = firstString(meta, "updated_by")
		if t, ok := ParseDate(meta["created_at"]); ok {
			g.Metadata.CreatedAt = t
		}
		if t, ok := ParseDate(meta["updated_at"]); ok {
			g.Metadata.UpdatedAt = t
		}
	}

	return g
}

// NormalizePledge maps a raw pledge document onto the canonical Pledge shape.
// Non-numeric amounts coerce to 0 so aggregation never has to guard.
func NormalizePledge(doc bson.M) Pledge {
	return Pledge{
		ID:          coerceID(doc["_id"]),
		GrantID:     coerceID(firstValue(doc, "grant_id", "grantId")),
		Donor:       firstString(doc, "donor", "Donor", "donorName"),
		Amount:      CoerceNumber(firstValue(doc, "amount", "Amount", "pledged")),
		Received:    CoerceNumber(firstValue(doc, "received", "Received", "amountReceived")),
		PledgedDate: CoerceDateString(firstValue(doc, "pledged_date", "pledgedDate")),
		Schedule:    firstString(doc, "schedule", "Schedule"),
		Notes:       firstString(doc, "notes", "Notes"),
	}
}

// NormalizeGift maps a raw gift document onto the canonical Gift shape.
func NormalizeGift(doc bson.M) Gift {
	return Gift{
		ID:           coerceID(doc["_id"]),
		GrantID:      coerceID(firstValue(doc, "grant_id", "grantId")),
		Amount:       CoerceNumber(firstValue(doc, "amount", "Amount")),
		Spent:        CoerceNumber(firstValue(doc, "spent", "Spent")),
		BudgetCode:   firstString(doc, "budget_code", "budgetCode"),
		Type:         firstString(doc, "type", "Type"),
		Status:       firstString(doc, "status", "Status"),
		Compliance:   firstString(doc, "compliance", "Compliance"),
		Acknowledged: CoerceBool(firstValue(doc, "acknowledged", "Acknowledged")),
	}
}

// NormalizeTask maps a raw tracking task onto the canonical shape. The status
// field has gone by several names over the app's life.
func NormalizeTask(doc bson.M) TrackingTask {
	return TrackingTask{
		ID:        coerceID(doc["_id"]),
		SectionID: coerceID(firstValue(doc, "section_id", "sectionId")),
		GrantID:   coerceID(firstValue(doc, "grant_id", "grantId")),
		Title:     firstString(doc, "title", "Title", "name", "task"),
		Status:    firstString(doc, "status", "Status", "taskStatus", "state"),
	}
}

// NormalizeCalendarEvent maps a raw manual calendar event onto the canonical shape.
func NormalizeCalendarEvent(doc bson.M) CalendarEvent {
	return CalendarEvent{
		ID:      coerceID(doc["_id"]),
		GrantID: coerceID(firstValue(doc, "grant_id", "grantId")),
		Title:   firstString(doc, "title", "Title", "name"),
		Type:    firstString(doc, "type", "Type", "eventType"),
		Date:    CoerceDateString(firstValue(doc, "date", "Date", "eventDate")),
		Org:     firstString(doc, "org", "Org", "organization"),
	}
}
