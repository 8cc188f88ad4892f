package client

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
)

func (a *App) runContacts(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	switch args[0] {
	case "list":
		contacts, err := a.services.ContactService.List(ctx)
		if err != nil {
			return err
		}
		if len(contacts) == 0 {
			fmt.Fprintln(a.out, "Контактов нет")
			return nil
		}
		tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tИМЯ\tИМПОРТИРОВАН\tТЕСТОВ")
		for _, c := range contacts {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", c.ID, c.DisplayName(), formatMillis(c.ImportedAt), len(c.Tests))
		}
		return tw.Flush()

	case "show":
		if len(args) != 2 {
			return ErrUsage
		}
		c, err := a.services.ContactService.Get(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s\n", c.DisplayName())
		fmt.Fprintf(a.out, "Импортирован: %s, версия %s\n", formatMillis(c.ImportedAt), dash(c.SourceVersion))
		if c.Profile != nil {
			printProfile(a.out, *c.Profile)
		}
		fmt.Fprintf(a.out, "Тестов: %d, записей дневника: %d\n", len(c.Tests), len(c.Diary))
		return nil

	case "remark":
		if len(args) < 3 {
			return ErrUsage
		}
		if err := a.services.ContactService.UpdateRemark(ctx, args[1], strings.Join(args[2:], " ")); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Примечание сохранено")
		return nil

	case "delete":
		fs := newFlagSet("contacts delete")
		yes := fs.Bool("yes", false, "do not ask for confirmation")
		if err := parseFlags(fs, args[1:]); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return ErrUsage
		}

		c, err := a.services.ContactService.Get(ctx, fs.Arg(0))
		if err != nil {
			return err
		}
		confirmed := *yes
		if !confirmed {
			if confirmed, err = a.prompter.ConfirmDelete(ctx, c); err != nil {
				return err
			}
		}
		if err = a.services.ContactService.Delete(ctx, c.ID, confirmed); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Контакт %q удалён\n", c.DisplayName())
		return nil
	}
	return ErrUsage
}
