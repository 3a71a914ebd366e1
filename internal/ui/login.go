package ui

import (
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

// LoginPage is shown to signed-out visitors.
func LoginPage(googleEnabled bool) g.Node {
	return page("Sign in",
		h.Main(h.Class("login"),
			h.H1(g.Text("Sign in")),
			h.Form(h.ID("login-form"),
				hx.Post("/auth/login"),
				hx.Target("#login-error"),
				hx.Swap("innerHTML"),
				h.Label(h.For("email"), g.Text("Email")),
				h.Input(h.ID("email"), h.Type("email"), h.Name("email"), h.Required(), h.AutoComplete("username")),
				h.Label(h.For("password"), g.Text("Password")),
				h.Input(h.ID("password"), h.Type("password"), h.Name("password"), h.Required(), h.AutoComplete("current-password")),
				h.Button(h.Type("submit"), g.Text("Sign in")),
			),
			h.P(h.ID("login-error"), h.Class("notice notice-error"), h.Role("alert")),
			g.If(googleEnabled,
				h.A(h.Class("button button-google"), h.Href("/auth/google/login"),
					h.I(h.Class("ti ti-brand-google")), g.Text(" Sign in with Google"),
				),
			),
		),
	)
}
