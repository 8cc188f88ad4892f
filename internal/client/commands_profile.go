package client

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/MKhiriev/go-myself-vault/models"
)

func (a *App) runProfile(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.showProfile(ctx)
	}
	if args[0] != "set" {
		return ErrUsage
	}

	fs := newFlagSet("profile set")
	name := fs.String("name", "", "display name")
	gender := fs.String("gender", "", "gender")
	birthday := fs.String("birthday", "", "birthday")
	contact := fs.String("contact", "", "contact info")
	bio := fs.String("bio", "", "short bio")
	if err := parseFlags(fs, args[1:]); err != nil {
		return err
	}
	set := visited(fs)
	if len(set) == 0 {
		return ErrUsage
	}

	profile, err := a.services.ProfileService.Get(ctx)
	if err != nil {
		return err
	}
	if set["name"] {
		profile.Name = *name
	}
	if set["gender"] {
		profile.Gender = *gender
	}
	if set["birthday"] {
		profile.Birthday = *birthday
	}
	if set["contact"] {
		profile.ContactInfo = *contact
	}
	if set["bio"] {
		profile.Bio = *bio
	}

	if _, err = a.services.ProfileService.Update(ctx, profile); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Профиль сохранён")
	return nil
}

func (a *App) showProfile(ctx context.Context) error {
	p, err := a.services.ProfileService.Get(ctx)
	if err != nil {
		return err
	}
	printProfile(a.out, p)
	return nil
}

func printProfile(out io.Writer, p models.Profile) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Имя:\t%s\n", dash(p.Name))
	fmt.Fprintf(tw, "Пол:\t%s\n", dash(p.Gender))
	fmt.Fprintf(tw, "Дата рождения:\t%s\n", dash(p.Birthday))
	fmt.Fprintf(tw, "Контакты:\t%s\n", dash(p.ContactInfo))
	fmt.Fprintf(tw, "О себе:\t%s\n", dash(p.Bio))
	fmt.Fprintf(tw, "Установка:\t%s\n", dash(p.InstallationID))
	_ = tw.Flush()
}

func dash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
