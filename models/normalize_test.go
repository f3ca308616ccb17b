package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCoerceNumber(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want float64
	}{
		{"float64", 42.5, 42.5},
		{"int32", int32(7), 7},
		{"int64", int64(900), 900},
		{"numeric string", "123.45", 123.45},
		{"string with currency noise", "$1,000", 1000},
		{"garbage string", "bad", 0},
		{"nil", nil, 0},
		{"bool", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceNumber(tt.in))
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		in    interface{}
		valid bool
	}{
		{"iso date", "2024-03-15", true},
		{"rfc3339", "2024-03-15T10:30:00Z", true},
		{"us slash format", "03/15/2024", true},
		{"long form", "March 15, 2024", true},
		{"store-native datetime", primitive.NewDateTimeFromTime(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)), true},
		{"empty string", "", false},
		{"garbage", "soon-ish", false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, ok := ParseDate(tt.in)
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				_, month, day := parsed.Date()
				assert.Equal(t, time.March, month)
				assert.Equal(t, 15, day)
			}
		})
	}
}

func TestNormalizeGrant_FieldAliases(t *testing.T) {
	tests := []struct {
		name string
		doc  bson.M
		want Grant
	}{
		{
			name: "canonical fields",
			doc:  bson.M{"_id": "1", "title": "Grant A", "status": "Active", "organization": "Org"},
			want: Grant{ID: "1", Title: "Grant A", Status: StatusActive, Organization: "Org"},
		},
		{
			name: "legacy capitalized fields",
			doc:  bson.M{"_id": "2", "Title": "Grant B", "Status": "approved"},
			want: Grant{ID: "2", Title: "Grant B", Status: StatusApproved},
		},
		{
			name: "name as title alias",
			doc:  bson.M{"_id": "3", "name": "Grant C", "state": "completed"},
			want: Grant{ID: "3", Title: "Grant C", Status: StatusCompleted},
		},
		{
			name: "unrecognized status",
			doc:  bson.M{"_id": "4", "title": "Grant D", "status": "archived"},
			want: Grant{ID: "4", Title: "Grant D", Status: StatusUnknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeGrant(tt.doc)
			assert.Equal(t, tt.want.ID, got.ID)
			assert.Equal(t, tt.want.Title, got.Title)
			assert.Equal(t, tt.want.Status, got.Status)
			assert.Equal(t, tt.want.Organization, got.Organization)
		})
	}
}

func TestNormalizeGrant_DateCoercion(t *testing.T) {
	doc := bson.M{
		"_id":             "5",
		"title":           "Grant E",
		"applicationDate": primitive.NewDateTimeFromTime(time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)),
		"report_deadline": "06/30/2024",
		"date_awarded":    "whenever",
	}

	got := NormalizeGrant(doc)

	assert.Equal(t, "2024-03-15", got.ApplicationDate)
	assert.Equal(t, "2024-06-30", got.ReportDeadline)
	assert.Equal(t, "", got.DateAwarded, "unparsable date normalizes to empty")
}

func TestNormalizePledge_TolerantAmounts(t *testing.T) {
	docs := []bson.M{
		{"_id": "p1", "donor": "A", "received": 100},
		{"_id": "p2", "donor": "B", "received": "bad"},
		{"_id": "p3", "donor": "C", "received": 50.0},
	}

	var total float64
	for _, doc := range docs {
		total += NormalizePledge(doc).Received
	}

	assert.Equal(t, float64(150), total, "non-numeric received contributes exactly 0")
}

func TestNormalizeTask_StatusAliases(t *testing.T) {
	tests := []struct {
		doc  bson.M
		want string
	}{
		{bson.M{"_id": "t1", "title": "a", "status": "Done"}, "Done"},
		{bson.M{"_id": "t2", "title": "b", "Status": "In Progress"}, "In Progress"},
		{bson.M{"_id": "t3", "title": "c", "taskStatus": "To Do"}, "To Do"},
		{bson.M{"_id": "t4", "title": "d", "state": "Done"}, "Done"},
		{bson.M{"_id": "t5", "title": "e"}, ""},
	}

	for _, tt := range tests {
		got := NormalizeTask(tt.doc)
		assert.Equal(t, tt.want, got.Status)
	}
}

func TestNormalizeCalendarEvent(t *testing.T) {
	doc := bson.M{
		"_id":      "ev-1",
		"grant_id": "3",
		"title":    "Panel review",
		"type":     "Review",
		"date":     "2024-03-15",
		"org":      "Green Fund",
	}

	got := NormalizeCalendarEvent(doc)

	require.Equal(t, "ev-1", got.ID)
	assert.Equal(t, "3", got.GrantID)
	assert.Equal(t, "Review", got.Type)
	assert.Equal(t, "2024-03-15", got.Date)
}
