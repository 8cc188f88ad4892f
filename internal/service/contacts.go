package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-myself-vault/internal/logger"
	"github.com/MKhiriev/go-myself-vault/internal/store"
	"github.com/MKhiriev/go-myself-vault/internal/utils"
	"github.com/MKhiriev/go-myself-vault/models"
)

type contactService struct {
	storage store.Storage
	ids     utils.IDGenerator
	now     func() time.Time
	logger  *logger.Logger
}

func NewContactService(storage store.Storage, ids utils.IDGenerator, log *logger.Logger) ContactService {
	return &contactService{storage: storage, ids: ids, now: time.Now, logger: log}
}

func (c *contactService) Add(ctx context.Context, contact models.ContactSnapshot) (models.ContactSnapshot, error) {
	contact.Name = strings.TrimSpace(contact.Name)
	contact.Remark = strings.TrimSpace(contact.Remark)
	if contact.Name == "" {
		return models.ContactSnapshot{}, ErrMissingIdentityAnchor
	}

	if contact.Remark == "" {
		same, err := c.FindByName(ctx, contact.Name)
		if err != nil {
			return models.ContactSnapshot{}, err
		}
		if len(same) > 0 {
			return models.ContactSnapshot{}, ErrRemarkRequired
		}
	}

	contact.ID = c.ids.Generate()
	if contact.ImportedAt == 0 {
		contact.ImportedAt = c.now().UnixMilli()
	}

	if err := c.storage.Repositories().Contacts.Insert(ctx, contact); err != nil {
		c.logger.Err(err).Str("func", "contactService.Add").Msg("failed to insert contact")
		return models.ContactSnapshot{}, fmt.Errorf("%w: %w", ErrStorageWriteFailure, err)
	}
	return contact, nil
}

func (c *contactService) Get(ctx context.Context, id string) (models.ContactSnapshot, error) {
	contact, err := c.storage.Repositories().Contacts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrContactNotFound) {
			return models.ContactSnapshot{}, ErrContactNotFound
		}
		return models.ContactSnapshot{}, fmt.Errorf("get contact: %w", err)
	}
	return contact, nil
}

func (c *contactService) List(ctx context.Context) ([]models.ContactSnapshot, error) {
	contacts, err := c.storage.Repositories().Contacts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

func (c *contactService) FindByName(ctx context.Context, name string) ([]models.ContactSnapshot, error) {
	contacts, err := c.storage.Repositories().Contacts.FindByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("find contacts by name: %w", err)
	}
	return contacts, nil
}

// Replace keeps the id and remark of the stored contact and nothing else.
func (c *contactService) Replace(ctx context.Context, contact models.ContactSnapshot) error {
	existing, err := c.Get(ctx, contact.ID)
	if err != nil {
		return err
	}
	contact.Remark = existing.Remark
	if contact.ImportedAt == 0 {
		contact.ImportedAt = c.now().UnixMilli()
	}

	if err = c.storage.Repositories().Contacts.Replace(ctx, contact); err != nil {
		c.logger.Err(err).Str("func", "contactService.Replace").Str("id", contact.ID).Msg("failed to replace contact")
		return contactWriteError(err)
	}
	return nil
}

// UpdateRemark refuses a blank remark while another contact shares the name.
func (c *contactService) UpdateRemark(ctx context.Context, id, remark string) error {
	remark = strings.TrimSpace(remark)
	if remark == "" {
		existing, err := c.Get(ctx, id)
		if err != nil {
			return err
		}
		same, err := c.FindByName(ctx, existing.Name)
		if err != nil {
			return err
		}
		if len(same) > 1 {
			return ErrRemarkRequired
		}
	}

	if err := c.storage.Repositories().Contacts.UpdateRemark(ctx, id, remark); err != nil {
		return contactWriteError(err)
	}
	return nil
}

func (c *contactService) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrDeleteNotConfirmed
	}

	if err := c.storage.Repositories().Contacts.Delete(ctx, id); err != nil {
		return contactWriteError(err)
	}
	c.logger.Info().Str("func", "contactService.Delete").Str("id", id).Msg("contact deleted")
	return nil
}

// contactWriteError maps a failed registry write.
func contactWriteError(err error) error {
	if errors.Is(err, store.ErrContactNotFound) {
		return ErrContactNotFound
	}
	return fmt.Errorf("%w: %w", ErrStorageWriteFailure, err)
}
