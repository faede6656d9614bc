// Package docs Safety Navigator API.
//
// Сервис оценки безопасности пешеходных маршрутов по данным OpenStreetMap
// и голосовой навигации к цели. Сгенерированная спецификация лежит в docs/swagger
// и отдается по /swagger/*.
//
// Основные возможности:
// - Оценка риска точки и маршрута с учетом времени суток
// - Поиск ближайших экстренных служб
// - Навигация к цели с голосовыми подсказками
// - Журнал GPS позиций и компас
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
//	Security:
//	- DeviceToken:
//
//	SecurityDefinitions:
//	DeviceToken:
//	     type: apiKey
//	     name: Authorization
//	     in: header
//
// swagger:meta
package docs
