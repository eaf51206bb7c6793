package timezone

import "bookable/models"

// zoneCoordinates maps common IANA zone names to a representative coordinate
// inside the zone, used when a client supplies only a zone name.
var zoneCoordinates = map[string]models.GeoPoint{
	"America/New_York":    {Lat: 40.7128, Lng: -74.0060},
	"America/Chicago":     {Lat: 41.8781, Lng: -87.6298},
	"America/Denver":      {Lat: 39.7392, Lng: -104.9903},
	"America/Phoenix":     {Lat: 33.4484, Lng: -112.0740},
	"America/Los_Angeles": {Lat: 34.0522, Lng: -118.2437},
	"America/Anchorage":   {Lat: 61.2181, Lng: -149.9003},
	"America/Toronto":     {Lat: 43.6532, Lng: -79.3832},
	"America/Vancouver":   {Lat: 49.2827, Lng: -123.1207},
	"America/Mexico_City": {Lat: 19.4326, Lng: -99.1332},
	"America/Sao_Paulo":   {Lat: -23.5505, Lng: -46.6333},
	"America/Bogota":      {Lat: 4.7110, Lng: -74.0721},
	"Pacific/Honolulu":    {Lat: 21.3069, Lng: -157.8583},
	"Europe/London":       {Lat: 51.5074, Lng: -0.1278},
	"Europe/Dublin":       {Lat: 53.3498, Lng: -6.2603},
	"Europe/Paris":        {Lat: 48.8566, Lng: 2.3522},
	"Europe/Berlin":       {Lat: 52.5200, Lng: 13.4050},
	"Europe/Madrid":       {Lat: 40.4168, Lng: -3.7038},
	"Europe/Rome":         {Lat: 41.9028, Lng: 12.4964},
	"Europe/Amsterdam":    {Lat: 52.3676, Lng: 4.9041},
	"Europe/Stockholm":    {Lat: 59.3293, Lng: 18.0686},
	"Europe/Warsaw":       {Lat: 52.2297, Lng: 21.0122},
	"Europe/Athens":       {Lat: 37.9838, Lng: 23.7275},
	"Europe/Moscow":       {Lat: 55.7558, Lng: 37.6173},
	"Africa/Cairo":        {Lat: 30.0444, Lng: 31.2357},
	"Africa/Lagos":        {Lat: 6.5244, Lng: 3.3792},
	"Africa/Nairobi":      {Lat: -1.2921, Lng: 36.8219},
	"Africa/Johannesburg": {Lat: -26.2041, Lng: 28.0473},
	"Asia/Dubai":          {Lat: 25.2048, Lng: 55.2708},
	"Asia/Karachi":        {Lat: 24.8607, Lng: 67.0011},
	"Asia/Kolkata":        {Lat: 19.0760, Lng: 72.8777},
	"Asia/Dhaka":          {Lat: 23.8103, Lng: 90.4125},
	"Asia/Bangkok":        {Lat: 13.7563, Lng: 100.5018},
	"Asia/Singapore":      {Lat: 1.3521, Lng: 103.8198},
	"Asia/Hong_Kong":      {Lat: 22.3193, Lng: 114.1694},
	"Asia/Shanghai":       {Lat: 31.2304, Lng: 121.4737},
	"Asia/Tokyo":          {Lat: 35.6762, Lng: 139.6503},
	"Asia/Seoul":          {Lat: 37.5665, Lng: 126.9780},
	"Australia/Perth":     {Lat: -31.9505, Lng: 115.8605},
	"Australia/Sydney":    {Lat: -33.8688, Lng: 151.2093},
	"Pacific/Auckland":    {Lat: -36.8485, Lng: 174.7633},
	"UTC":                 {Lat: 0, Lng: 0},
}
