// Package mq публикует события жизненного цикла сущностей в RabbitMQ.
//
// Структура:
//   - connection.go — соединение с брокером и переподключение
//   - topology.go   — exchange, очередь аудита и привязка
//   - publisher.go  — публикация событий
//   - consumer.go   — чтение очереди аудита (modulo-cli events tail)
//
// Routing key события — "<resource>.<action>":
//   - echo.created, echo.deleted
//   - contact.created, contact.deleted
//
// Все события уходят в topic exchange modulo.events. Очередь
// audit.events привязана к нему с ключом "#" и получает всё.
package mq
