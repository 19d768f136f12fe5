package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chirag807/pdf-annotation-frontend/pkg/guard"
	"github.com/chirag807/pdf-annotation-frontend/pkg/live"
	"github.com/chirag807/pdf-annotation-frontend/pkg/models"
	"github.com/chirag807/pdf-annotation-frontend/pkg/panel"
	"github.com/chirag807/pdf-annotation-frontend/pkg/upload"
	"github.com/chirag807/pdf-annotation-frontend/pkg/views"
)

const usage = `usage: annotateview <command> [args]

  register <email> <password> <name> [role]   create an account
  login <email> <password>                    authenticate
  logout                                      drop the stored session
  whoami                                      show the current identity

  docs                                        list documents
  upload <title> <file.pdf...>                upload PDFs (admin)
  annotations <document-id>                   list a document's annotations
  annotate <document-id> <type> <content>     add an annotation
  edit <document-id> <annotation-id> <content>  edit an annotation
  delete <document-id> <annotation-id>        delete an annotation
  watch <document-id>                         follow live annotation events

  admin stats                                 usage counters (admin)
  admin users                                 list users (admin)
  admin role <user-id> <role>                 change a user's role (admin)
  admin rm <user-id>                          delete a user (admin)
`

// Run dispatches one command. Commands other than login and register first
// resume any stored session.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return nil
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "login":
		if len(rest) != 2 {
			return fmt.Errorf("usage: login <email> <password>")
		}
		if err := a.sess.Login(ctx, rest[0], rest[1]); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "logged in as %s (%s)\n", a.sess.User().Name, a.sess.User().Role)
		return nil

	case "register":
		if len(rest) < 3 || len(rest) > 4 {
			return fmt.Errorf("usage: register <email> <password> <name> [role]")
		}
		role := models.RoleReviewer
		if len(rest) == 4 {
			parsed, err := models.ParseRole(rest[3])
			if err != nil {
				return err
			}
			role = parsed
		}
		if err := a.sess.Register(ctx, rest[0], rest[1], rest[2], role); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "registered %s (%s)\n", a.sess.User().Email, a.sess.User().Role)
		return nil
	}

	if err := a.sess.Resume(ctx); err != nil {
		return err
	}

	switch cmd {
	case "logout":
		a.sess.Logout()
		fmt.Fprintln(a.out, "logged out")
		return nil
	case "whoami":
		return a.whoami()
	case "docs":
		return a.docs(ctx)
	case "upload":
		return a.upload(ctx, rest)
	case "annotations":
		return a.annotations(ctx, rest)
	case "annotate":
		return a.annotate(ctx, rest)
	case "edit":
		return a.edit(ctx, rest)
	case "delete":
		return a.delete(ctx, rest)
	case "watch":
		return a.watch(ctx, rest)
	case "admin":
		return a.adminCmd(ctx, rest)
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// require gates a command like the route guard gates a view.
func (a *App) require(role models.Role) error {
	switch guard.Check(a.sess.State(), a.sess.User(), role) {
	case guard.Allow:
		return nil
	case guard.RedirectHome:
		return fmt.Errorf("this command requires the %s role", role)
	default:
		return fmt.Errorf("not logged in; run: annotateview login <email> <password>")
	}
}

func (a *App) whoami() error {
	if err := a.require(""); err != nil {
		return err
	}
	u := a.sess.User()
	fmt.Fprintf(a.out, "%s <%s> role=%s id=%s\n", u.Name, u.Email, u.Role, u.ID)
	return nil
}

func (a *App) docs(ctx context.Context) error {
	if err := a.require(""); err != nil {
		return err
	}
	dash := views.NewDashboard(a.api, a.sess.User, a.log)
	dash.Load(ctx)
	if msg := dash.Error(); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	for _, d := range dash.Documents() {
		fmt.Fprintf(a.out, "%s  %s\n", d.ID, d.Title)
	}
	return nil
}

func (a *App) upload(ctx context.Context, args []string) error {
	if err := a.require(models.RoleAdmin); err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("usage: upload <title> <file.pdf...>")
	}
	title := args[0]

	var files []upload.File
	for _, path := range args[1:] {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		files = append(files, upload.File{Name: filepath.Base(path), Data: data})
	}

	valid, msg := upload.ValidateSelection(files)
	if msg != "" {
		fmt.Fprintln(a.out, msg)
	}

	batch := upload.NewBatch(a.api, a.log)
	docs, err := batch.Run(ctx, title, valid)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d document(s) uploaded successfully!\n", len(docs))
	return nil
}

func (a *App) annotations(ctx context.Context, args []string) error {
	if err := a.require(""); err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: annotations <document-id>")
	}

	v := views.NewViewer(a.api, a.sess.User, models.DocumentID(args[0]), a.log)
	if err := v.Load(ctx); err != nil {
		return err
	}
	if v.Document() == nil {
		return fmt.Errorf("document not found")
	}
	fmt.Fprintf(a.out, "%s (%s)\n", v.Document().Title, v.FileURL())
	for _, ann := range v.Panel().Annotations() {
		a.printAnnotation(ann)
	}
	return nil
}

func (a *App) printAnnotation(ann *models.Annotation) {
	author := "?"
	if ann.Author != nil {
		author = ann.Author.Name
	}
	line := fmt.Sprintf("%s  [%s] %s: %s", ann.ID, ann.Type, author, ann.Content)
	if ann.UpdatedBy != nil {
		line += fmt.Sprintf(" (edited by %s)", ann.UpdatedBy.Name)
	}
	fmt.Fprintln(a.out, line)
}

func (a *App) annotate(ctx context.Context, args []string) error {
	if err := a.require(""); err != nil {
		return err
	}
	if len(args) != 3 {
		return fmt.Errorf("usage: annotate <document-id> <type> <content>")
	}
	typ, err := models.ParseAnnotationType(args[1])
	if err != nil {
		return err
	}

	p := a.loadPanel(ctx, models.DocumentID(args[0]))
	if p == nil {
		return fmt.Errorf("document not found")
	}
	if err := p.Add(ctx, typ, args[2]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "annotation added")
	return nil
}

func (a *App) edit(ctx context.Context, args []string) error {
	if err := a.require(""); err != nil {
		return err
	}
	if len(args) != 3 {
		return fmt.Errorf("usage: edit <document-id> <annotation-id> <content>")
	}

	p := a.loadPanel(ctx, models.DocumentID(args[0]))
	if p == nil {
		return fmt.Errorf("document not found")
	}
	if err := p.StartEdit(models.AnnotationID(args[1])); err != nil {
		return err
	}
	p.SetDraft(args[2])
	if err := p.SaveEdit(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "annotation updated")
	return nil
}

func (a *App) delete(ctx context.Context, args []string) error {
	if err := a.require(""); err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("usage: delete <document-id> <annotation-id>")
	}

	p := a.loadPanel(ctx, models.DocumentID(args[0]))
	if p == nil {
		return fmt.Errorf("document not found")
	}
	if err := p.Delete(ctx, models.AnnotationID(args[1])); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "annotation deleted")
	return nil
}

func (a *App) loadPanel(ctx context.Context, id models.DocumentID) *panel.Panel {
	p := panel.New(a.api, a.sess.User, id, a.log)
	if err := p.Load(ctx); err != nil || p.Document() == nil {
		return nil
	}
	return p
}

func (a *App) watch(ctx context.Context, args []string) error {
	if err := a.require(""); err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: watch <document-id>")
	}

	url := live.StreamURL(a.api.BaseURL(), models.DocumentID(args[0]))
	feed := live.New(url, a.api.AuthToken(), a.log)
	if err := feed.Start(ctx); err != nil {
		return err
	}
	defer feed.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-feed.Events():
			if !ok {
				return nil
			}
			fmt.Fprintf(a.out, "%s  ", event.Action)
			a.printAnnotation(event.Annotation)
		}
	}
}

func (a *App) adminCmd(ctx context.Context, args []string) error {
	if err := a.require(models.RoleAdmin); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: admin stats|users|role|rm")
	}

	view := views.NewAdmin(a.api, a.log)

	switch args[0] {
	case "stats":
		view.Load(ctx)
		stats := view.Stats()
		if stats == nil {
			return fmt.Errorf("failed to fetch stats")
		}
		fmt.Fprintf(a.out, "users=%d documents=%d annotations=%d active=%d\n",
			stats.TotalUsers, stats.TotalDocuments, stats.TotalAnnotations, stats.ActiveUsers)
		return nil

	case "users":
		view.Load(ctx)
		for _, u := range view.Users() {
			fmt.Fprintf(a.out, "%s  %s <%s> %s\n", u.ID, u.Name, u.Email, u.Role)
		}
		return nil

	case "role":
		if len(args) != 3 {
			return fmt.Errorf("usage: admin role <user-id> <role>")
		}
		role, err := models.ParseRole(args[2])
		if err != nil {
			return err
		}
		view.Load(ctx)
		if err := view.ChangeRole(ctx, models.UserID(args[1]), role); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "role updated")
		return nil

	case "rm":
		if len(args) != 2 {
			return fmt.Errorf("usage: admin rm <user-id>")
		}
		view.Load(ctx)
		if err := view.DeleteUser(ctx, models.UserID(args[1])); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "user deleted")
		return nil

	default:
		return fmt.Errorf("unknown admin command %q", args[0])
	}
}
