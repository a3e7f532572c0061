package repository

import "errors"

// Ошибки, общие для всех реализаций хранилища.
var (
	ErrAdminUserNotFound      = errors.New("admin user not found")
	ErrAdminUserExists        = errors.New("admin user already exists")
	ErrPortfolioItemNotFound  = errors.New("portfolio item not found")
	ErrContactInquiryNotFound = errors.New("contact inquiry not found")
	ErrMediaFileNotFound      = errors.New("media file not found")
	ErrMediaFilenameExists    = errors.New("media filename already exists")
)
