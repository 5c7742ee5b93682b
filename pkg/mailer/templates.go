package mailer

import (
	"bytes"
	"fmt"
	"text/template"
)

var templates = map[string]struct {
	subject string
	text    string
}{
	"welcome": {
		subject: "Welcome to the network",
		text: "Hari Om {{.Username}},\n\n" +
			"Your registration is complete. Find your nearest center, join its satsangs, " +
			"and your attendance will be reflected on your profile.\n",
	},
	"verification_notice": {
		subject: "Your account has been verified",
		text: "Hari Om {{.Username}},\n\n" +
			"An administrator has verified your account at level {{.Level}}. " +
			"You may now endorse events if your rank permits.\n",
	},
}

// Render produces the subject and text body for a named template.
func Render(name string, data map[string]any) (subject, text string, err error) {
	entry, ok := templates[name]
	if !ok {
		return "", "", fmt.Errorf("mailer: unknown template %q", name)
	}
	t, err := template.New(name).Parse(entry.text)
	if err != nil {
		return "", "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return entry.subject, buf.String(), nil
}
