package candidate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordProfile(t *testing.T) {
	r := Record{
		"fullname":   "Jane Doe",
		"email":      "jane@example.com",
		"experience": "5",
		"techstack":  "Go, Redis",
		"unknown":    "ignored",
	}

	p, err := r.Profile()
	require.NoError(t, err)
	require.Equal(t, "Jane Doe", p.FullName)
	require.Equal(t, "jane@example.com", p.Email)
	require.Equal(t, "5", p.Experience)
	require.Equal(t, "Go, Redis", p.TechStack)
	require.Empty(t, p.Phone)
}

func TestRecordCloneIsIndependent(t *testing.T) {
	r := Record{"fullname": "Jane"}
	c := r.Clone()
	c["fullname"] = "John"

	require.Equal(t, "Jane", r.Get(FieldFullName))
	require.NotNil(t, Record(nil).Clone())
}

func TestProfileSummary(t *testing.T) {
	summary := Profile{FullName: "Jane Doe", Experience: "3"}.Summary()

	require.Contains(t, summary, "- **Name:** Jane Doe\n")
	require.Contains(t, summary, "- **Experience:** 3 years\n")
	require.Contains(t, summary, "- **Email:** Not provided\n")
	require.Contains(t, summary, "- **Tech Stack:** Not provided\n")
}

func TestRecordHas(t *testing.T) {
	r := Record{"techstack": "   "}
	require.False(t, r.Has(FieldTechStack))
	r["techstack"] = "Go"
	require.True(t, r.Has(FieldTechStack))
}
