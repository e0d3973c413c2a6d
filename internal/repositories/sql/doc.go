// Package sql предоставляет реализацию репозитория ссылок поверх GORM (SQLite).
//
// Ошибки GORM преобразуются в общие ошибки уровня репозитория с помощью ConvertErrorType:
//   - gorm.ErrDuplicatedKey -> repositories.ErrDuplicateKey
//   - gorm.ErrRecordNotFound -> repositories.ErrNotFound
//   - другие ошибки -> repositories.ErrUnknown
package sql
