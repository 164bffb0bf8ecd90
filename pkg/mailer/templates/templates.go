package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

const welcomeHTML = `<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #222;">
    <h2>Welcome{{if .Name}}, {{.Name}}{{end}}!</h2>
    <p>Your account has been created. You can now sign in with your email address.</p>
    <p style="color: #888; font-size: 12px;">If you did not create this account, you can ignore this message.</p>
  </body>
</html>`

var tmpls = map[string]*template.Template{
	"welcome": template.Must(template.New("welcome").Parse(welcomeHTML)),
}

// Subjects per template name.
var subjects = map[string]string{
	"welcome": "Welcome to your new account",
}

// Render renders the named template with data and returns subject and HTML body.
func Render(name string, data map[string]any) (subject, html string, err error) {
	t, ok := tmpls[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", "", err
	}
	subject, ok = subjects[name]
	if !ok {
		subject = "Notification"
	}
	return subject, buf.String(), nil
}
