package notifications

import (
	"fmt"
	"html"
	"strings"
)

const signature = "- Your Daily Motivation App"

// MotivationEmailHTML returns the HTML body: the escaped message with line
// breaks kept, followed by the signature.
func MotivationEmailHTML(body string) string {
	escaped := html.EscapeString(body)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")

	return fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; line-height:1.6; color:#333;">
<p>%s</p>
<p style="margin-top:20px; font-weight:bold;">%s</p>
</body>
</html>`, escaped, signature)
}

func MotivationEmailText(body string) string {
	return body + "\n\n" + signature
}
