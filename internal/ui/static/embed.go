// Пакет static — встроенный viewer каталога Craftstore.
// Содержит HTML, CSS и JS галереи изделий.
// Файлы встраиваются в бинарник через //go:embed и раздаются через HTTP.
package static

import (
	"embed"
	"net/http"
)

// content — встроенная файловая система с ресурсами viewer.
//
//go:embed index.html styles.css script.js
var content embed.FS

// Handler возвращает HTTP-обработчик статических ресурсов viewer.
// index.html раздаётся по корневому пути.
func Handler() http.Handler {
	return http.FileServer(http.FS(content))
}
