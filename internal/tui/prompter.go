// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-myself-vault/internal/service"
	"github.com/MKhiriev/go-myself-vault/models"
)

var _ service.Decider = (*Prompter)(nil)

// Prompter asks the user to settle import decisions and destructive actions
// with short-lived bubbletea programs. Each call blocks until the user
// answers or ctx is done.
type Prompter struct {
	opts []tea.ProgramOption
}

// NewPrompter returns a Prompter. opts are passed to every program it starts,
// e.g. tea.WithInput/tea.WithOutput to redirect the terminal.
func NewPrompter(opts ...tea.ProgramOption) *Prompter {
	return &Prompter{opts: opts}
}

// RedirectToSelf asks whether a package that looks like the user's own data
// should be restored into the local profile instead of being added as a contact.
func (p *Prompter) RedirectToSelf(ctx context.Context, incoming models.Profile) (bool, error) {
	body := fmt.Sprintf("Пакет «%s» похож на ваши собственные данные.\nВосстановить их в свой профиль вместо добавления контакта?", incoming.Name)
	m, err := p.choose(ctx, newChoiceModel("ИМПОРТ", body, []string{
		"Восстановить в свой профиль",
		"Отмена",
	}))
	if err != nil {
		return false, err
	}
	return m.chosen == 0, nil
}

// ResolveSelfConflict shows the differences between local and incoming data
// and asks how to reconcile them.
func (p *Prompter) ResolveSelfConflict(ctx context.Context, report models.ConflictReport) (models.SelfResolution, error) {
	m, err := p.choose(ctx, newChoiceModel("КОНФЛИКТ ДАННЫХ", describeConflicts(report), []string{
		"Умное слияние (заполнить пустые поля, добавить записи)",
		"Полная перезапись локальных данных",
		"Отмена",
	}))
	if err != nil {
		return models.SelfCancel, err
	}
	switch m.chosen {
	case 0:
		return models.SelfSmartMerge, nil
	case 1:
		return models.SelfOverwrite, nil
	}
	return models.SelfCancel, nil
}

// ResolveNameCollision lets the user overwrite one of the same-named contacts
// or store the incoming one as new, in which case a remark is required.
func (p *Prompter) ResolveNameCollision(ctx context.Context, incoming models.Profile, existing []models.ContactSnapshot) (models.CollisionResolution, error) {
	options := make([]string, 0, len(existing)+2)
	for _, c := range existing {
		options = append(options, "Перезаписать: "+describeContact(c))
	}
	options = append(options, "Добавить как новый контакт", "Отмена")

	body := fmt.Sprintf("Контакт с именем «%s» уже существует.", incoming.Name)
	m, err := p.choose(ctx, newChoiceModel("СОВПАДЕНИЕ ИМЕН", body, options))
	if err != nil {
		return models.CollisionResolution{Action: models.CollisionCancel}, err
	}

	switch {
	case m.chosen >= 0 && m.chosen < len(existing):
		return models.CollisionResolution{Action: models.CollisionOverwrite, TargetID: existing[m.chosen].ID}, nil
	case m.chosen == len(existing):
		remark, ok, err := p.AskRemark(ctx, incoming.Name)
		if err != nil || !ok {
			return models.CollisionResolution{Action: models.CollisionCancel}, err
		}
		return models.CollisionResolution{Action: models.CollisionAddNew, Remark: remark}, nil
	}
	return models.CollisionResolution{Action: models.CollisionCancel}, nil
}

// AskRemark prompts for a non-empty remark. ok is false when the user backs out.
func (p *Prompter) AskRemark(ctx context.Context, name string) (string, bool, error) {
	body := fmt.Sprintf("Введите примечание, чтобы отличать «%s» от других контактов с тем же именем.", name)
	final, err := p.run(ctx, newInputModel("ПРИМЕЧАНИЕ", body, "например: коллега", true))
	if err != nil {
		return "", false, err
	}
	m, ok := final.(inputModel)
	if !ok {
		return "", false, ErrUnexpectedModel
	}
	return m.value, m.submitted, nil
}

// ConfirmDelete asks the user to confirm removal of a contact.
func (p *Prompter) ConfirmDelete(ctx context.Context, contact models.ContactSnapshot) (bool, error) {
	final, err := p.run(ctx, newConfirmModel("Удалить \""+contact.DisplayName()+"\"?"))
	if err != nil {
		return false, err
	}
	m, ok := final.(confirmModel)
	if !ok {
		return false, ErrUnexpectedModel
	}
	return m.confirmed, nil
}

func (p *Prompter) choose(ctx context.Context, model choiceModel) (choiceModel, error) {
	final, err := p.run(ctx, model)
	if err != nil {
		return model, err
	}
	m, ok := final.(choiceModel)
	if !ok {
		return model, ErrUnexpectedModel
	}
	return m, nil
}

func (p *Prompter) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, p.opts...)
	final, err := tea.NewProgram(model, opts...).Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, fmt.Errorf("prompt: %w", err)
	}
	return final, nil
}

func describeConflicts(r models.ConflictReport) string {
	var b strings.Builder
	b.WriteString("Импортируемые данные отличаются от локальных.\n")
	for _, f := range r.Fields {
		b.WriteString("\n")
		b.WriteString(fitText(fieldLabel(f.Field), 20))
		b.WriteString(": ")
		b.WriteString(valueOrDash(f.Local))
		b.WriteString(" → ")
		b.WriteString(valueOrDash(f.Incoming))
	}
	if r.LocalTests != r.IncomingTests {
		b.WriteString("\nТесты: " + strconv.Itoa(r.LocalTests) + " → " + strconv.Itoa(r.IncomingTests))
	}
	if r.LocalDiary != r.IncomingDiary {
		b.WriteString("\nДневник: " + strconv.Itoa(r.LocalDiary) + " → " + strconv.Itoa(r.IncomingDiary))
	}
	return b.String()
}

func describeContact(c models.ContactSnapshot) string {
	if c.ImportedAt == 0 {
		return c.DisplayName()
	}
	return c.DisplayName() + ", импортирован " + time.UnixMilli(c.ImportedAt).Format("02.01.2006")
}

func fieldLabel(field string) string {
	switch models.ProfileField(field) {
	case models.FieldGender:
		return "Пол"
	case models.FieldBirthday:
		return "Дата рождения"
	case models.FieldContactInfo:
		return "Контакты"
	case models.FieldBio:
		return "О себе"
	}
	return field
}
