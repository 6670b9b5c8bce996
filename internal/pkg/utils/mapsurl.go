package utils

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	mapsBaseURL           = "https://www.google.com/maps"
	mapsDirectionsBaseURL = "https://www.google.com/maps/dir/"
)

// MapsURLOptions - параметры построения ссылки на Google Maps
type MapsURLOptions struct {
	Zoom       int      // уровень зума, по умолчанию 15
	MapType    string   // roadmap, satellite, hybrid, terrain, google_earth
	Origin     string   // начальная точка маршрута
	Destination string  // конечная точка маршрута
	TravelMode string   // driving, walking, bicycling, transit
	Waypoints  []string // промежуточные точки маршрута
	Layer      string   // bicycling, traffic, transit
	PlaceID    string   // уникальный Place ID
	StreetView bool     // режим Street View
	Heading    *float64 // направление камеры в Street View
	Pitch      *float64 // наклон камеры в Street View
	Language   string   // язык интерфейса карты
	Embed      bool     // встраиваемая карта
	IWLoc      string   // центрирование на конкретном пине
}

var mapTypeCodes = map[string]string{
	"roadmap":      "m",
	"satellite":    "k",
	"hybrid":       "h",
	"terrain":      "p",
	"google_earth": "e",
}

var layerCodes = map[string]string{
	"bicycling": "c",
	"traffic":   "t",
	"transit":   "p",
}

// FormatLatLon форматирует координаты в строку запроса "lat,lon"
func FormatLatLon(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lon, 'f', -1, 64)
}

// GoogleMapsURL строит ссылку на Google Maps для места, маршрута или вида карты.
// query - адрес или координаты в формате "lat,lon" (см. FormatLatLon)
func GoogleMapsURL(query string, opts MapsURLOptions) string {
	zoom := opts.Zoom
	if zoom == 0 {
		zoom = 15
	}
	mapType, ok := mapTypeCodes[opts.MapType]
	if !ok {
		mapType = "m"
	}

	type param struct{ key, value string }
	var params []param
	var baseURL string

	if opts.Origin != "" || opts.Destination != "" || opts.TravelMode != "" || len(opts.Waypoints) > 0 {
		baseURL = mapsDirectionsBaseURL
		params = append(params, param{"api", "1"})
		if opts.Origin != "" {
			params = append(params, param{"origin", opts.Origin})
		}
		if opts.Destination != "" {
			params = append(params, param{"destination", opts.Destination})
		}
		if opts.TravelMode != "" {
			params = append(params, param{"travelmode", opts.TravelMode})
		}
		if len(opts.Waypoints) > 0 {
			params = append(params, param{"waypoints", strings.Join(opts.Waypoints, "|")})
		}
	} else {
		baseURL = mapsBaseURL
		if opts.PlaceID != "" {
			params = append(params, param{"place_id", opts.PlaceID})
		} else {
			params = append(params, param{"q", query})
			params = append(params, param{"z", strconv.Itoa(zoom)})
			params = append(params, param{"t", mapType})
			if opts.Layer != "" {
				if code, ok := layerCodes[opts.Layer]; ok {
					params = append(params, param{"layer", code})
				}
			}
			if opts.StreetView {
				params = append(params, param{"cbll", query})
				cbp := []string{"12", "0", "0", "0", "5", "0"}
				if opts.Heading != nil {
					cbp[1] = strconv.FormatFloat(*opts.Heading, 'f', -1, 64)
				}
				if opts.Pitch != nil {
					cbp[2] = strconv.FormatFloat(*opts.Pitch, 'f', -1, 64)
				}
				params = append(params, param{"cbp", strings.Join(cbp, ",")})
			}
		}
	}

	if opts.Language != "" {
		params = append(params, param{"hl", opts.Language})
	}
	if opts.Embed {
		params = append(params, param{"output", "embed"})
	}
	if opts.IWLoc != "" {
		params = append(params, param{"iwloc", opts.IWLoc})
	}

	pairs := make([]string, 0, len(params))
	for _, p := range params {
		pairs = append(pairs, p.key+"="+escapeQueryValue(p.value))
	}

	return fmt.Sprintf("%s?%s", baseURL, strings.Join(pairs, "&"))
}

// escapeQueryValue кодирует значение параметра, оставляя запятые и
// разделители waypoints читаемыми, как это делает сам Google Maps
func escapeQueryValue(v string) string {
	escaped := url.QueryEscape(v)
	escaped = strings.ReplaceAll(escaped, "%2C", ",")
	escaped = strings.ReplaceAll(escaped, "%7C", "|")
	return escaped
}
