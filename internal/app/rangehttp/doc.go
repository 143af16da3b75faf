// Package rangehttp реализует HTTP-интерфейс файлового сервера с поддержкой диапазонов байт.
// Путь запроса без ведущего "/" разрешается внутри корневого каталога сервиса:
//   - HEAD /{path} возвращает размер файла в Content-Length и Accept-Ranges: bytes, без тела.
//   - GET /{path} отдаёт файл целиком (200) либо первый запрошенный диапазон (206).
//   - GET с неразбираемым или невыполнимым диапазоном даёт 416 и Content-Range: bytes */<size>.
//
// Остальные методы отвечают 404, отдельного 405 нет.
package rangehttp
