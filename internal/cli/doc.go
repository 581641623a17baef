// Package cli реализует инструмент командной строки Modulo.
//
// # Обзор
//
// CLI — клиентская утилита для Modulo API. Работает через HTTP и не
// импортирует internal/api: типы ответов продублированы в client.go.
//
// # Ключевые компоненты
//
// ## Client
//
// HTTP-клиент для API. Разбирает конверты ответов: data-конверт,
// страницу (items/total/page/page_size/pages) и конверт ошибки.
// Конверт ошибки превращается в *APIError с текстом
// "<message> (code <n>)".
//
//	client := cli.NewClient("http://localhost:8080", token)
//	page, err := client.ListEchoes(ctx, cli.ListOpts{PageSize: 50})
//
// ## Output
//
// Форматирование вывода. Поддерживает два режима:
//   - Таблицы (text/tabwriter) — по умолчанию
//   - JSON — с флагом --json
//
// Данные выводятся в stdout, сообщения (Success/Error) — в stderr.
// Это позволяет использовать pipe: modulo echo list --json | jq .
//
// ## Commands
//
// Cobra-команды организованы по ресурсам:
//   - echo: list, show, create, process, delete
//   - contact: list, show, create, delete
//   - health
//   - events: tail (читает очередь audit.events напрямую из RabbitMQ)
//
// Каждая группа создаётся фабричной функцией (NewEchoCmd и т.д.),
// принимающей clientFn и outputFn — замыкания для ленивого создания
// Client и Output после парсинга PersistentFlags.
package cli
