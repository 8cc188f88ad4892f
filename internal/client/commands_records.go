package client

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/MKhiriev/go-myself-vault/models"
)

func (a *App) runTests(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	switch args[0] {
	case "add":
		fs := newFlagSet("tests add")
		typ := fs.String("type", "", "quiz type")
		result := fs.String("result", "", "result as JSON")
		analysis := fs.String("analysis", "", "analysis text")
		if err := parseFlags(fs, args[1:]); err != nil {
			return err
		}
		if strings.TrimSpace(*typ) == "" {
			return ErrUsage
		}

		record := models.TestRecord{Type: *typ, Analysis: *analysis}
		if *result != "" {
			if !json.Valid([]byte(*result)) {
				return fmt.Errorf("%w: result is not valid JSON", ErrUsage)
			}
			record.Result = json.RawMessage(*result)
		}

		saved, err := a.services.RecordService.AddTest(ctx, record)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Тест сохранён: %s\n", saved.ID)
		return nil

	case "list":
		fs := newFlagSet("tests list")
		types := fs.String("type", "", "comma separated quiz types")
		if err := parseFlags(fs, args[1:]); err != nil {
			return err
		}

		records, err := a.services.RecordService.ListTests(ctx, splitList(*types)...)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tТИП\tЗАВЕРШЁН")
		for _, r := range records {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", r.ID, r.Type, formatMillis(r.CompletedAt))
		}
		return tw.Flush()
	}
	return ErrUsage
}

func (a *App) runDiary(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	switch args[0] {
	case "add":
		fs := newFlagSet("diary add")
		title := fs.String("title", "", "entry title")
		mood := fs.String("mood", "", "mood")
		if err := parseFlags(fs, args[1:]); err != nil {
			return err
		}
		content := strings.TrimSpace(strings.Join(fs.Args(), " "))
		if content == "" {
			return ErrUsage
		}

		u, err := a.unlocked(ctx)
		if err != nil {
			return err
		}
		defer u.Lock()

		saved, err := a.services.RecordService.AddDiary(ctx, u, models.DiaryEntry{Title: *title, Mood: *mood, Content: content})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Запись сохранена: %s\n", saved.ID)
		return nil

	case "list":
		u, err := a.unlocked(ctx)
		if err != nil {
			return err
		}
		defer u.Lock()

		entries, err := a.services.RecordService.ListDiary(ctx, u)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Fprintf(a.out, "[%s] %s %s\n", formatMillis(e.CreatedAt), e.ID, e.Title)
			if e.Mood != "" {
				fmt.Fprintf(a.out, "  настроение: %s\n", e.Mood)
			}
			fmt.Fprintf(a.out, "  %s\n", e.Content)
		}
		return nil

	case "import":
		if len(args) != 2 {
			return ErrUsage
		}
		raw, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read diary file: %w", err)
		}

		u, err := a.unlocked(ctx)
		if err != nil {
			return err
		}
		defer u.Lock()

		n, err := a.services.RecordService.ImportLegacyDiary(ctx, u, raw)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Импортировано записей: %d\n", n)
		return nil
	}
	return ErrUsage
}

func formatMillis(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return time.UnixMilli(ms).Local().Format("02.01.2006 15:04")
}
