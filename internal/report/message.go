package report

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rdg-stuttgart/songwish-processor/internal/models"
)

var nonPhoneChars = regexp.MustCompile(`[^\d+]`)

// ContactURL derives the reviewer's one-click contact link from the
// submitter's preferred channel: an Instagram profile link, a wa.me link, or
// the free-text fallback field. Empty when no contact data is available.
func ContactURL(sub models.Submission) string {
	switch sub.ContactPref {
	case models.ContactInstagram:
		if handle := instagramHandle(sub.Instagram); handle != "" {
			return "https://www.instagram.com/" + handle
		}
	case models.ContactWhatsApp:
		phone := nonPhoneChars.ReplaceAllString(sub.WhatsApp, "")
		if phone != "" {
			phone = strings.TrimPrefix(phone, "+")
			return "https://wa.me/" + phone
		}
	}

	return strings.TrimSpace(sub.OtherContact)
}

// greetingName returns the name to address the submitter by, or empty for
// an anonymous greeting. Only Instagram handles are usable as names.
func greetingName(sub models.Submission) string {
	if sub.ContactPref == models.ContactInstagram {
		return instagramHandle(sub.Instagram)
	}
	return ""
}

func instagramHandle(raw string) string {
	return strings.TrimPrefix(strings.TrimSpace(raw), "@")
}

// IsGerman reports whether the submitter filled the form in German. The
// language column carries either a flag emoji or the word Deutsch.
func IsGerman(language string) bool {
	return strings.Contains(language, "🇩🇪") || strings.Contains(language, "Deutsch")
}

// Message renders the bilingual contact message for one submission based on
// the primary song's verdict and the submitter's language preference.
// Rejections list the language-appropriate half of each reason as bullets
// and inject the correction-form URL.
func Message(sub models.Submission, verdict models.Verdict, formURL string) string {
	if IsGerman(sub.Language) {
		return germanMessage(sub, verdict, formURL)
	}
	return englishMessage(sub, verdict, formURL)
}

func germanMessage(sub models.Submission, verdict models.Verdict, formURL string) string {
	greeting := "Hallo! 👋"
	if name := greetingName(sub); name != "" {
		greeting = fmt.Sprintf("Hallo %s! 👋", name)
	}

	if verdict.Accepted() {
		return greeting + `

Vielen Dank für deinen Songwunsch beim RDG Stuttgart! 🎵

Dein Songwunsch wurde erfolgreich geprüft und wird auf die Playlist aufgenommen, sobald du auf diese Nachricht antwortest/reagierst.

Wir freuen uns auf dich! 🎉`
	}

	bullets := make([]string, len(verdict))
	for i, r := range verdict {
		bullets[i] = "• " + r.German
	}

	return greeting + `

Vielen Dank für deinen Songwunsch beim RDG Stuttgart! 🎵

Leider gibt es ein Problem mit deinem Songwunsch:

` + strings.Join(bullets, "\n") + `

Bitte korrigiere deinen Songwunsch über dieses Formular: ` + formURL + `

Antworte auf diese Nachricht, sobald du die Korrektur vorgenommen hast. Ansonsten ist der Songwunsch leider ungültig.

Bei Fragen kannst du dich gerne melden! 💬`
}

func englishMessage(sub models.Submission, verdict models.Verdict, formURL string) string {
	greeting := "Hello! 👋"
	if name := greetingName(sub); name != "" {
		greeting = fmt.Sprintf("Hello %s! 👋", name)
	}

	if verdict.Accepted() {
		return greeting + `

Thank you for your song wish at RDG Stuttgart! 🎵

Your song wish has been successfully verified and will be added to the playlist once you reply/react to this message.

We look forward to seeing you! 🎉`
	}

	bullets := make([]string, len(verdict))
	for i, r := range verdict {
		bullets[i] = "• " + r.English
	}

	return greeting + `

Thank you for your song wish at RDG Stuttgart! 🎵

Unfortunately, there is a problem with your song wish:

` + strings.Join(bullets, "\n") + `

Please correct your song wish using this form: ` + formURL + `

Reply to this message once you have made the correction. Otherwise, your song wish will be invalid.

Feel free to reach out if you have any questions! 💬`
}
