package domain

// PlaceRecord - один результат поиска места, как его вернул Google Maps.
// Поля не валидируются и не преобразуются - запись передаётся как есть
type PlaceRecord map[string]interface{}

// Name возвращает поле name записи, если оно есть
func (r PlaceRecord) Name() string {
	return r.stringField("name")
}

// FormattedAddress возвращает поле formatted_address записи, если оно есть
func (r PlaceRecord) FormattedAddress() string {
	return r.stringField("formatted_address")
}

// PlaceID возвращает поле place_id записи, если оно есть
func (r PlaceRecord) PlaceID() string {
	return r.stringField("place_id")
}

func (r PlaceRecord) stringField(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// Coordinates - географические координаты (широта, долгота)
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ResultPage - одна страница результатов поиска мест.
// Непустой NextPageToken означает, что у сервиса есть следующая страница
type ResultPage struct {
	Records       []PlaceRecord `json:"records"`
	NextPageToken string        `json:"next_page_token,omitempty"`
}

// PlaceSearchParams - параметры одного запроса к поиску мест
type PlaceSearchParams struct {
	Query        string
	Location     *Coordinates
	RadiusMeters float64
	PageToken    string
}
