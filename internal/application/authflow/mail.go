package authflow

import "html"

const (
	subjectConfirmLogin  = "Confirm your login"
	subjectPasswordReset = "Password Reset"
)

// renderLinkMail produces the minimal inline HTML both flows send: an intro
// line plus the link, rendered as its own text so the recipient can copy it.
func renderLinkMail(intro, link string) string {
	esc := html.EscapeString(link)
	return `<p>` + html.EscapeString(intro) + `</p><a href="` + esc + `">` + esc + `</a>`
}
