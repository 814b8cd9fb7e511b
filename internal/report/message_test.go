package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rdg-stuttgart/songwish-processor/internal/models"
)

func TestContactURL(t *testing.T) {
	tests := []struct {
		name string
		sub  models.Submission
		want string
	}{
		{
			name: "instagram handle",
			sub:  models.Submission{ContactPref: models.ContactInstagram, Instagram: "dancer_42"},
			want: "https://www.instagram.com/dancer_42",
		},
		{
			name: "instagram with at sign",
			sub:  models.Submission{ContactPref: models.ContactInstagram, Instagram: "@dancer_42"},
			want: "https://www.instagram.com/dancer_42",
		},
		{
			name: "whatsapp with formatting",
			sub:  models.Submission{ContactPref: models.ContactWhatsApp, WhatsApp: "+49 171 123-4567"},
			want: "https://wa.me/491711234567",
		},
		{
			name: "whatsapp without plus",
			sub:  models.Submission{ContactPref: models.ContactWhatsApp, WhatsApp: "491711234567"},
			want: "https://wa.me/491711234567",
		},
		{
			name: "fallback to other contact",
			sub:  models.Submission{ContactPref: "Email", OtherContact: "mailto:x@example.com"},
			want: "mailto:x@example.com",
		},
		{
			name: "instagram preferred but empty falls back",
			sub:  models.Submission{ContactPref: models.ContactInstagram, OtherContact: "signal: +49123"},
			want: "signal: +49123",
		},
		{
			name: "nothing available",
			sub:  models.Submission{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContactURL(tt.sub))
		})
	}
}

func TestIsGerman(t *testing.T) {
	assert.True(t, IsGerman("🇩🇪 Deutsch"))
	assert.True(t, IsGerman("Deutsch"))
	assert.False(t, IsGerman("🇬🇧 English"))
	assert.False(t, IsGerman(""))
}

func TestMessage_GermanSuccess(t *testing.T) {
	sub := models.Submission{
		Language:    "🇩🇪 Deutsch",
		ContactPref: models.ContactInstagram,
		Instagram:   "@tanzmaus",
	}

	msg := Message(sub, nil, testFormURL)

	assert.Contains(t, msg, "Hallo tanzmaus! 👋")
	assert.Contains(t, msg, "erfolgreich geprüft")
	assert.NotContains(t, msg, testFormURL)
}

func TestMessage_GermanRejectionListsGermanReasons(t *testing.T) {
	sub := models.Submission{Language: "Deutsch"}
	verdict := models.Verdict{
		{German: "Songabschnitt zu lang", English: "Song section too long"},
		{German: "18+ Video nicht erlaubt", English: "18+ video not allowed"},
	}

	msg := Message(sub, verdict, testFormURL)

	assert.Contains(t, msg, "Hallo! 👋")
	assert.Contains(t, msg, "• Songabschnitt zu lang")
	assert.Contains(t, msg, "• 18+ Video nicht erlaubt")
	assert.NotContains(t, msg, "Song section too long")
	assert.Contains(t, msg, testFormURL)
}

func TestMessage_EnglishRejectionListsEnglishReasons(t *testing.T) {
	sub := models.Submission{Language: "🇬🇧 English"}
	verdict := models.Verdict{
		{German: "Songabschnitt zu lang", English: "Song section too long"},
	}

	msg := Message(sub, verdict, testFormURL)

	assert.Contains(t, msg, "Hello! 👋")
	assert.Contains(t, msg, "• Song section too long")
	assert.NotContains(t, msg, "Songabschnitt zu lang")
	assert.Contains(t, msg, testFormURL)
}

func TestMessage_EnglishSuccess(t *testing.T) {
	sub := models.Submission{Language: "English"}

	msg := Message(sub, models.Verdict{}, testFormURL)

	assert.Contains(t, msg, "Hello! 👋")
	assert.Contains(t, msg, "successfully verified")
}
