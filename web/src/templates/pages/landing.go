package pages

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// LandingData is the view model for the entry page.
type LandingData struct {
	// SignedIn is set when the visitor already holds a live session.
	SignedIn bool
	UserName string
	// Email prefills the sign-in form after a failed attempt.
	Email string
}

// Landing renders the entry page: sign-in and registration forms, or a link
// back to the dashboard for a visitor who is still signed in.
func Landing(d LandingData) g.Node {
	return h.Div(
		h.Class("container mx-auto p-8 max-w-3xl"),
		h.H1(h.Class("text-4xl font-extrabold mb-6"), g.Text("Taskboard")),
		g.If(d.SignedIn, h.Div(
			h.ID("signed-in"),
			h.Class("bg-white shadow rounded-xl p-6"),
			h.P(g.Text("Signed in as "+d.UserName+".")),
			h.A(h.Href("/dashboard"), h.Class("text-blue-600 underline"), g.Text("Go to your dashboard")),
		)),
		g.If(!d.SignedIn, h.Div(
			h.Class("grid grid-cols-2 gap-6"),
			signInForm(d.Email),
			registerForm(),
		)),
	)
}

func signInForm(email string) g.Node {
	return h.Form(
		h.ID("sign-in"),
		h.Method("post"),
		h.Action("/login"),
		h.Class("bg-white shadow rounded-xl p-6 flex flex-col gap-3"),
		h.H2(h.Class("text-xl font-bold"), g.Text("Sign in")),
		field("login-email", "email", "email", "Email", email, "email"),
		field("login-password", "password", "password", "Password", "", "current-password"),
		h.Button(h.Type("submit"), h.Class("px-4 py-2 bg-blue-600 text-white rounded-md"), g.Text("Sign in")),
	)
}

func registerForm() g.Node {
	return h.Form(
		h.ID("register"),
		h.Method("post"),
		h.Action("/register"),
		h.Class("bg-white shadow rounded-xl p-6 flex flex-col gap-3"),
		h.H2(h.Class("text-xl font-bold"), g.Text("Create an account")),
		field("register-name", "name", "text", "Name", "", "name"),
		field("register-email", "email", "email", "Email", "", "email"),
		field("register-password", "password", "password", "Password", "", "new-password"),
		field("register-confirm", "password_confirm", "password", "Confirm password", "", "new-password"),
		h.Button(h.Type("submit"), h.Class("px-4 py-2 bg-gray-800 text-white rounded-md"), g.Text("Register")),
	)
}

func field(id, name, typ, label, value, autocomplete string) g.Node {
	return h.Label(
		h.For(id),
		h.Class("flex flex-col text-sm font-semibold"),
		g.Text(label),
		h.Input(
			h.ID(id),
			h.Name(name),
			h.Type(typ),
			g.If(value != "", h.Value(value)),
			g.Attr("autocomplete", autocomplete),
			h.Class("p-2 border rounded-md font-normal"),
		),
	)
}
