// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing message strings of the myself CLI.
//
// All Msg* constants are shown to the user instead of raw error text.
// Keeping them in one place ensures consistent wording across commands.
package app

const (
	// MsgTamperedOrWrongPassword is shown when a package signature does not
	// verify. Both causes look identical, so the message names both.
	MsgTamperedOrWrongPassword = "неверный пароль или файл был изменён"

	// MsgWrongPassword is shown when the local vault password is wrong.
	MsgWrongPassword = "неверный пароль"

	// MsgEmptyPassword is shown when a password prompt was left empty.
	MsgEmptyPassword = "пароль не может быть пустым"

	// MsgPasswordMismatch is shown when a password and its confirmation differ.
	MsgPasswordMismatch = "пароли не совпадают"

	// MsgPasswordNotSet is shown before the first "init".
	MsgPasswordNotSet = "пароль не задан, выполните команду init"

	// MsgAlreadyInitialized is shown when "init" runs a second time.
	MsgAlreadyInitialized = "пароль уже задан, используйте команду passwd"

	// MsgInvalidFormat is shown for files that are not export packages.
	MsgInvalidFormat = "файл не является пакетом MySelf или повреждён"

	// MsgCorruptPayload is shown when a verified package fails to decrypt.
	MsgCorruptPayload = "содержимое пакета повреждено"

	// MsgIdentityMismatch is shown when a self restore targets another
	// person's package.
	MsgIdentityMismatch = "пакет принадлежит другому человеку, импортируйте его как контакт"

	// MsgMissingIdentityAnchor is shown when a profile or package has no name.
	MsgMissingIdentityAnchor = "не указано имя профиля"

	// MsgImportCancelled is shown when the user backs out of an import.
	MsgImportCancelled = "импорт отменён, данные не изменены"

	// MsgSelfConflict is shown when local and incoming data differ and no
	// prompt is available to resolve it.
	MsgSelfConflict = "данные конфликтуют с локальными, требуется выбор способа слияния"

	// MsgNameCollision is shown when a contact with the same name exists and
	// no prompt is available to resolve it.
	MsgNameCollision = "контакт с таким именем уже существует"

	// MsgRemarkRequired is shown when a same-named contact is added without
	// a remark.
	MsgRemarkRequired = "для контактов с одинаковым именем требуется примечание"

	// MsgStorageWriteFailure is shown when the local database rejected a write.
	MsgStorageWriteFailure = "не удалось сохранить данные, изменения не применены"

	// MsgContactNotFound is shown for an unknown contact id.
	MsgContactNotFound = "контакт не найден"

	// MsgDeleteNotConfirmed is shown when the user declined a deletion.
	MsgDeleteNotConfirmed = "удаление отменено"

	// MsgInvalidLegacyDiary is shown when a legacy diary file cannot be read.
	MsgInvalidLegacyDiary = "файл дневника имеет неверный формат"

	// MsgUnknownImportMode is shown for an unsupported -mode value.
	MsgUnknownImportMode = "неизвестный режим импорта, используйте self или contact"

	// MsgSessionExpired is shown when a remembered session has run out.
	MsgSessionExpired = "сессия истекла, выполните unlock"

	// MsgVaultLocked is shown when encrypted data is touched without unlocking.
	MsgVaultLocked = "хранилище заблокировано"

	// MsgInvalidInput is shown when a record fails validation.
	MsgInvalidInput = "некорректные данные: проверьте тип теста, текст записи и формат даты (ГГГГ-ММ-ДД)"

	// MsgUsage is shown for malformed command lines.
	MsgUsage = "неверные аргументы команды, см. myself help"

	// MsgCancelled is shown when the process was interrupted.
	MsgCancelled = "операция прервана"

	// MsgInternalError is shown for anything unexpected.
	MsgInternalError = "внутренняя ошибка, подробности в журнале"
)
