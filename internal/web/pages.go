package web

import (
	"fmt"
	"time"

	g "github.com/maragudk/gomponents"
	h "github.com/maragudk/gomponents/html"

	"newsroom/internal/model"
)

// viewer is the signed-in user as kept in the session.
type viewer struct {
	ID       uint
	Username string
	Role     model.Role
}

func (v viewer) signedIn() bool { return v.Username != "" }

func (v viewer) canPublish() bool { return v.Role.CanPublish() }

func (v viewer) canModify(ownerID uint) bool {
	return v.Role == model.RoleAdmin || v.ID == ownerID
}

type flash struct {
	Kind    string
	Message string
}

const styles = `body { font-family: sans-serif; max-width: 60rem; margin: 0 auto; padding: 1em; }
nav a { margin-right: 1em; }
.flash { padding: .6em 1em; margin: 1em 0; border-radius: 4px; }
.flash-error { background: #fadbd8; }
.flash-success { background: #d4efdf; }
.card { border: 1px solid #ddd; border-radius: 4px; padding: 1em; margin: 1em 0; }
.card img { max-width: 100%; }
form.inline { display: inline; }
label { display: block; margin-top: .5em; }
`

func layout(title string, v viewer, f flash, content ...g.Node) g.Node {
	return h.Doctype(
		h.HTML(
			h.Lang("en"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.TitleEl(g.Text(title+" | Newsroom")),
				h.StyleEl(g.Raw(styles)),
			),
			h.Body(
				navbar(v),
				g.If(f.Message != "", h.Div(h.Class("flash flash-"+f.Kind), g.Text(f.Message))),
				h.Main(content...),
			),
		),
	)
}

func navbar(v viewer) g.Node {
	if !v.signedIn() {
		return h.Nav(
			h.A(h.Href("/login"), g.Text("Log in")),
			h.A(h.Href("/signup"), g.Text("Sign up")),
		)
	}
	return h.Nav(
		h.A(h.Href("/articles"), g.Text("Articles")),
		h.A(h.Href("/papers"), g.Text("Papers")),
		g.If(v.canPublish(), h.A(h.Href("/articles/new"), g.Text("Write"))),
		g.If(v.Role == model.RoleAdmin, h.A(h.Href("/users"), g.Text("Users"))),
		h.A(h.Href("/profile"), g.Textf("%s (%s)", v.Username, v.Role)),
		h.FormEl(h.Class("inline"), h.Method("post"), h.Action("/logout"),
			h.Button(h.Type("submit"), g.Text("Log out")),
		),
	)
}

func field(label, name, typ, value string, required bool) g.Node {
	return h.Label(
		g.Text(label),
		h.Input(h.Type(typ), h.Name(name), h.Value(value), g.If(required, h.Required())),
	)
}

func loginPage(f flash) g.Node {
	return layout("Log in", viewer{}, f,
		h.H1(g.Text("Log in")),
		h.FormEl(h.Method("post"), h.Action("/login"),
			field("Username", "username", "text", "", true),
			field("Password", "password", "password", "", true),
			h.Button(h.Type("submit"), g.Text("Log in")),
		),
		h.P(g.Text("No account yet? "), h.A(h.Href("/signup"), g.Text("Sign up"))),
	)
}

func signupPage(f flash) g.Node {
	return layout("Sign up", viewer{}, f,
		h.H1(g.Text("Sign up")),
		h.FormEl(h.Method("post"), h.Action("/signup"),
			field("Username", "username", "text", "", true),
			field("First name", "firstName", "text", "", false),
			field("Last name", "lastName", "text", "", false),
			field("Email", "email", "email", "", true),
			field("Password", "password", "password", "", true),
			h.Label(g.Text("Role"),
				h.Select(h.Name("role"),
					h.Option(h.Value(string(model.RoleReader)), g.Text("Reader")),
					h.Option(h.Value(string(model.RoleJournalist)), g.Text("Journalist")),
					h.Option(h.Value(string(model.RoleGuest)), g.Text("Guest")),
				),
			),
			h.Button(h.Type("submit"), g.Text("Create account")),
		),
	)
}

func dateFilter(action string, day time.Time) g.Node {
	return h.FormEl(h.Method("get"), h.Action(action),
		h.Label(g.Text("Date"),
			h.Input(h.Type("date"), h.Name("date"), h.Value(day.Format(time.DateOnly))),
		),
		h.Button(h.Type("submit"), g.Text("Show")),
	)
}

func byline(a model.Article) g.Node {
	author := "unknown"
	if a.Author != nil {
		author = a.Author.Username
	}
	return h.Small(g.Textf("%s by %s, %s", a.ArticleType, author, a.PublishedAt.Format("2 Jan 2006 15:04")))
}

func articlesPage(v viewer, f flash, day time.Time, articles []model.Article) g.Node {
	return layout("Articles", v, f,
		h.H1(g.Textf("Articles of %s", day.Format("Monday 2 January 2006"))),
		dateFilter("/articles", day),
		g.If(len(articles) == 0, h.P(g.Text("Nothing was published on this day."))),
		g.Group(g.Map(articles, func(a model.Article) g.Node {
			return h.Div(h.Class("card"),
				h.H2(h.A(h.Href(fmt.Sprintf("/articles/%d", a.ID)), g.Text(a.Title))),
				byline(a),
				h.P(g.Text(a.Summary)),
				h.Small(g.Textf("%d likes, %d reviews", len(a.Likes), len(a.Reviews))),
			)
		})),
	)
}

func rating(r *int) string {
	if r == nil {
		return "unrated"
	}
	return fmt.Sprintf("%d/5", *r)
}

func articlePage(v viewer, f flash, a *model.Article) g.Node {
	return layout(a.Title, v, f,
		h.H1(g.Text(a.Title)),
		byline(*a),
		g.If(a.Picture != "", h.Img(h.Src(a.Picture), h.Alt(a.Title))),
		h.P(g.Text(a.Summary)),
		g.If(v.canModify(a.AuthorID), h.Div(
			h.A(h.Href(fmt.Sprintf("/articles/%d/edit", a.ID)), g.Text("Edit")),
			g.Text(" "),
			h.FormEl(h.Class("inline"), h.Method("post"), h.Action(fmt.Sprintf("/articles/%d/delete", a.ID)),
				h.Button(h.Type("submit"), g.Text("Delete")),
			),
		)),
		h.P(
			g.Textf("%d likes ", len(a.Likes)),
			h.FormEl(h.Class("inline"), h.Method("post"), h.Action(fmt.Sprintf("/articles/%d/like", a.ID)),
				h.Button(h.Type("submit"), g.Text("Like")),
			),
		),
		h.H2(g.Text("Reviews")),
		g.If(len(a.Reviews) == 0, h.P(g.Text("No reviews yet."))),
		g.Group(g.Map(a.Reviews, func(r model.Review) g.Node {
			reviewer := "unknown"
			if r.User != nil {
				reviewer = r.User.Username
			}
			return h.Div(h.Class("card"),
				h.Strong(g.Text(r.Title)),
				g.Textf(" (%s) by %s", rating(r.Rating), reviewer),
				h.P(g.Text(r.Content)),
			)
		})),
		h.H3(g.Text("Write a review")),
		h.FormEl(h.Method("post"), h.Action(fmt.Sprintf("/articles/%d/reviews", a.ID)),
			field("Title", "title", "text", "", true),
			h.Label(g.Text("Content"), h.Textarea(h.Name("content"), h.Rows("4"), h.Required())),
			h.Label(g.Text("Rating"),
				h.Input(h.Type("number"), h.Name("rating"), h.Min("0"), h.Max("5")),
			),
			h.Button(h.Type("submit"), g.Text("Send review")),
		),
	)
}

// articleFormPage renders the create form when a is nil and the edit form otherwise.
func articleFormPage(v viewer, f flash, a *model.Article) g.Node {
	title, action := "New article", "/articles"
	var current model.Article
	if a != nil {
		title, action = "Edit article", fmt.Sprintf("/articles/%d/edit", a.ID)
		current = *a
	}
	published := ""
	if !current.PublishedAt.IsZero() {
		published = current.PublishedAt.Format(time.DateOnly)
	}
	paper := ""
	if current.PaperID != 0 {
		paper = fmt.Sprint(current.PaperID)
	}
	return layout(title, v, f,
		h.H1(g.Text(title)),
		h.FormEl(h.Method("post"), h.Action(action),
			field("Title", "title", "text", current.Title, true),
			h.Label(g.Text("Summary"), h.Textarea(h.Name("summary"), h.Rows("6"), h.Required(), g.Text(current.Summary))),
			field("Picture URL", "picture", "url", current.Picture, true),
			field("Type", "articleType", "text", current.ArticleType, false),
			field("Published on", "publishedAt", "date", published, false),
			field("Paper id (defaults to the latest edition)", "paperId", "number", paper, false),
			h.Button(h.Type("submit"), g.Text("Save")),
		),
	)
}

func papersPage(v viewer, f flash, day time.Time, papers []model.Paper) g.Node {
	return layout("Papers", v, f,
		h.H1(g.Textf("Papers of %s", day.Format("2 January 2006"))),
		dateFilter("/papers", day),
		g.If(len(papers) == 0, h.P(g.Text("No paper for this day."))),
		h.Ul(g.Map(papers, func(p model.Paper) g.Node {
			return h.Li(g.Textf("#%d %s, published by %s", p.ID, p.NamePaper, p.NamePublisher))
		})...),
		g.If(v.canPublish(), g.Group([]g.Node{
			h.H2(g.Text("New paper")),
			h.FormEl(h.Method("post"), h.Action("/papers"),
				field("Date", "date", "date", day.Format(time.DateOnly), true),
				field("Name", "namePaper", "text", "", true),
				field("Publisher", "namePublisher", "text", "", true),
				h.Button(h.Type("submit"), g.Text("Create")),
			),
		})),
	)
}

func profilePage(v viewer, f flash, u *model.User, reviews []model.Review) g.Node {
	return layout("Profile", v, f,
		h.H1(g.Text(u.Username)),
		h.Table(
			h.TBody(
				h.Tr(h.Th(g.Text("Name")), h.Td(g.Text(u.FullName()))),
				h.Tr(h.Th(g.Text("Email")), h.Td(g.Text(u.Email))),
				h.Tr(h.Th(g.Text("Role")), h.Td(g.Text(string(u.Role)))),
			),
		),
		h.H2(g.Text("My reviews")),
		g.If(len(reviews) == 0, h.P(g.Text("You have not reviewed anything yet."))),
		h.Ul(g.Map(reviews, func(r model.Review) g.Node {
			return h.Li(
				h.A(h.Href(fmt.Sprintf("/articles/%d", r.ArticleID)), g.Text(r.Title)),
				g.Textf(" (%s)", rating(r.Rating)),
			)
		})...),
	)
}

func usersPage(v viewer, f flash, users []model.User) g.Node {
	return layout("Users", v, f,
		h.H1(g.Text("Users")),
		h.Table(
			h.THead(h.Tr(
				h.Th(g.Text("Username")), h.Th(g.Text("Name")), h.Th(g.Text("Email")), h.Th(g.Text("Role")), h.Th(),
			)),
			h.TBody(g.Map(users, func(u model.User) g.Node {
				return h.Tr(
					h.Td(g.Text(u.Username)),
					h.Td(g.Text(u.FullName())),
					h.Td(g.Text(u.Email)),
					h.Td(g.Text(string(u.Role))),
					h.Td(g.If(u.ID != v.ID,
						h.FormEl(h.Class("inline"), h.Method("post"), h.Action(fmt.Sprintf("/users/%d/delete", u.ID)),
							h.Button(h.Type("submit"), g.Text("Delete")),
						),
					)),
				)
			})...),
		),
	)
}
