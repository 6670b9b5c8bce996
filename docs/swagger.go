// Package docs Places Microservice API.
//
// Микросервис-обёртка над Google Maps API для поиска мест.
// Скрывает детали аутентификации, геокодирования и постраничной
// выборки за простым HTTP API.
//
// Основные возможности:
// - Текстовый поиск мест с прозрачным обходом пагинации Google Places
// - Геокодирование адресов в координаты
// - Пакетный сбор мест по списку локаций через очередь заданий
// - Построение ссылок на Google Maps
// - Вычисление расстояний по формуле гаверсинусов
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
// swagger:meta
package docs
