package service

import (
	"github.com/MKhiriev/go-myself-vault/internal/card"
	"github.com/MKhiriev/go-myself-vault/internal/config"
	"github.com/MKhiriev/go-myself-vault/internal/crypto"
	"github.com/MKhiriev/go-myself-vault/internal/logger"
	"github.com/MKhiriev/go-myself-vault/internal/pack"
	"github.com/MKhiriev/go-myself-vault/internal/store"
	"github.com/MKhiriev/go-myself-vault/internal/utils"
)

type Services struct {
	ProfileService ProfileService
	RecordService  RecordService
	ExportService  ExportService
	ImportService  ImportService
	ContactService ContactService
}

func NewServices(storage store.Storage, keyChain crypto.KeyChain, renderer card.Renderer, decider Decider, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	ids := utils.NewUUIDGenerator()
	codec := pack.NewCodec(keyChain)

	return &Services{
		ProfileService: NewProfileService(storage, ids, logger),
		RecordService:  NewRecordService(storage, ids, logger),
		ExportService:  NewExportService(storage, codec, renderer, cfg, logger),
		ImportService:  NewImportService(storage, codec, decider, ids, logger),
		ContactService: NewContactService(storage, ids, logger),
	}
}
