package schema

// Table identifiers of a GTFS schedule feed.
const (
	TableAgency         = "agency"
	TableStops          = "stops"
	TableRoutes         = "routes"
	TableTrips          = "trips"
	TableStopTimes      = "stop_times"
	TableCalendar       = "calendar"
	TableCalendarDates  = "calendar_dates"
	TableFareAttributes = "fare_attributes"
	TableFareRules      = "fare_rules"
	TableShapes         = "shapes"
	TableFrequencies    = "frequencies"
	TableTransfers      = "transfers"
	TableFeedInfo       = "feed_info"
)

// calendar_dates exception_type values
const (
	ExceptionTypeAdded   = 1
	ExceptionTypeRemoved = 2
)

type FieldDefinition struct {
	ID       string
	Type     FieldType
	Required bool
}

func (f *FieldDefinition) Coerce(raw string) (any, error) {
	return f.Type.Coerce(raw)
}

type TableFormat struct {
	ID          string
	Required    bool
	Description string
	Fields      []FieldDefinition

	lookup map[string]int
}

// FileName is the name the table has inside a feed.
func (t *TableFormat) FileName() string {
	return t.ID + ".txt"
}

func (t *TableFormat) Field(id string) (*FieldDefinition, bool) {
	i, ok := t.lookup[id]
	if !ok {
		return nil, false
	}

	return &t.Fields[i], true
}

// RequiredFieldIDs returns the ids of the required fields in declaration order.
func (t *TableFormat) RequiredFieldIDs() []string {
	var ids []string
	for _, field := range t.Fields {
		if field.Required {
			ids = append(ids, field.ID)
		}
	}

	return ids
}

func required(id string, fieldType FieldType) FieldDefinition {
	return FieldDefinition{ID: id, Type: fieldType, Required: true}
}

func optional(id string, fieldType FieldType) FieldDefinition {
	return FieldDefinition{ID: id, Type: fieldType}
}

var formats = []*TableFormat{
	{
		ID:          TableAgency,
		Required:    true,
		Description: "One or more transit agencies that provide the data in this feed.",
		Fields: []FieldDefinition{
			optional("agency_id", FieldTypeString),
			required("agency_name", FieldTypeString),
			required("agency_url", FieldTypeString),
			required("agency_timezone", FieldTypeString),
			optional("agency_lang", FieldTypeString),
			optional("agency_phone", FieldTypeString),
			optional("agency_fare_url", FieldTypeString),
			optional("agency_email", FieldTypeString),
		},
	},
	{
		ID:          TableStops,
		Required:    true,
		Description: "Individual locations where vehicles pick up or drop off passengers.",
		Fields: []FieldDefinition{
			required("stop_id", FieldTypeString),
			optional("stop_code", FieldTypeString),
			required("stop_name", FieldTypeString),
			optional("stop_desc", FieldTypeString),
			required("stop_lat", FieldTypeFloat),
			required("stop_lon", FieldTypeFloat),
			optional("zone_id", FieldTypeString),
			optional("stop_url", FieldTypeString),
			optional("location_type", FieldTypeInt),
			optional("parent_station", FieldTypeString),
			optional("stop_timezone", FieldTypeString),
			optional("wheelchair_boarding", FieldTypeInt),
		},
	},
	{
		ID:          TableRoutes,
		Required:    true,
		Description: "Transit routes. A route is a group of trips that are displayed to riders as a single service.",
		Fields: []FieldDefinition{
			required("route_id", FieldTypeString),
			optional("agency_id", FieldTypeString),
			required("route_short_name", FieldTypeString),
			required("route_long_name", FieldTypeString),
			optional("route_desc", FieldTypeString),
			required("route_type", FieldTypeInt),
			optional("route_url", FieldTypeString),
			optional("route_color", FieldTypeString),
			optional("route_text_color", FieldTypeString),
		},
	},
	{
		ID:          TableTrips,
		Required:    true,
		Description: "Trips for each route. A trip is a sequence of two or more stops that occurs at specific time.",
		Fields: []FieldDefinition{
			required("route_id", FieldTypeString),
			required("service_id", FieldTypeString),
			required("trip_id", FieldTypeString),
			optional("trip_headsign", FieldTypeString),
			optional("trip_short_name", FieldTypeString),
			optional("direction_id", FieldTypeInt),
			optional("block_id", FieldTypeString),
			optional("shape_id", FieldTypeString),
			optional("wheelchair_accessible", FieldTypeInt),
			optional("bikes_allowed", FieldTypeInt),
		},
	},
	{
		ID:          TableStopTimes,
		Required:    true,
		Description: "Times that a vehicle arrives at and departs from individual stops for each trip.",
		Fields: []FieldDefinition{
			required("trip_id", FieldTypeString),
			required("arrival_time", FieldTypeTime),
			required("departure_time", FieldTypeTime),
			required("stop_id", FieldTypeString),
			required("stop_sequence", FieldTypeInt),
			optional("stop_headsign", FieldTypeString),
			optional("pickup_type", FieldTypeString),
			optional("drop_off_type", FieldTypeString),
			optional("shape_dist_traveled", FieldTypeString),
			optional("timepoint", FieldTypeString),
		},
	},
	{
		ID:          TableCalendar,
		Required:    true,
		Description: "Dates for service IDs using a weekly schedule.",
		Fields: []FieldDefinition{
			required("service_id", FieldTypeString),
			required("monday", FieldTypeInt),
			required("tuesday", FieldTypeInt),
			required("wednesday", FieldTypeInt),
			required("thursday", FieldTypeInt),
			required("friday", FieldTypeInt),
			required("saturday", FieldTypeInt),
			required("sunday", FieldTypeInt),
			required("start_date", FieldTypeDate),
			required("end_date", FieldTypeDate),
		},
	},
	{
		ID:          TableCalendarDates,
		Description: "Exceptions for the service IDs defined in the calendar table.",
		Fields: []FieldDefinition{
			required("service_id", FieldTypeString),
			required("date", FieldTypeDate),
			required("exception_type", FieldTypeInt),
		},
	},
	{
		ID:          TableFareAttributes,
		Description: "Fare information for a transit organization's routes.",
		Fields: []FieldDefinition{
			required("fare_id", FieldTypeString),
			required("price", FieldTypeFloat),
			required("currency_type", FieldTypeString),
			required("payment_method", FieldTypeInt),
			required("transfers", FieldTypeString),
			optional("agency_id", FieldTypeString),
			optional("transfer_duration", FieldTypeInt),
		},
	},
	{
		ID:          TableFareRules,
		Description: "Rules for applying fare information for a transit organization's routes.",
		Fields: []FieldDefinition{
			required("fare_id", FieldTypeString),
			optional("route_id", FieldTypeString),
			optional("origin_id", FieldTypeString),
			optional("destination_id", FieldTypeString),
			optional("contains_id", FieldTypeString),
		},
	},
	{
		ID:          TableShapes,
		Description: "Rules for drawing lines on a map to represent a transit organization's routes.",
		Fields: []FieldDefinition{
			required("shape_id", FieldTypeString),
			required("shape_pt_lat", FieldTypeFloat),
			required("shape_pt_lon", FieldTypeFloat),
			required("shape_pt_sequence", FieldTypeInt),
			optional("shape_dist_traveled", FieldTypeFloat),
		},
	},
	{
		ID:          TableFrequencies,
		Description: "Headway (time between trips) for routes with variable frequency of service.",
		Fields: []FieldDefinition{
			required("trip_id", FieldTypeString),
			required("start_time", FieldTypeTime),
			required("end_time", FieldTypeTime),
			required("headway_secs", FieldTypeInt),
			optional("exact_times", FieldTypeInt),
		},
	},
	{
		ID:          TableTransfers,
		Description: "Rules for making connections at transfer points between routes.",
		Fields: []FieldDefinition{
			required("from_stop_id", FieldTypeString),
			required("to_stop_id", FieldTypeString),
			required("transfer_type", FieldTypeInt),
			optional("min_transfer_time", FieldTypeInt),
		},
	},
	{
		ID:          TableFeedInfo,
		Description: "Additional information about the feed itself, including publisher, version, and expiration information.",
		Fields: []FieldDefinition{
			required("feed_publisher_name", FieldTypeString),
			required("feed_publisher_url", FieldTypeString),
			required("feed_lang", FieldTypeString),
			optional("feed_start_date", FieldTypeDate),
			optional("feed_end_date", FieldTypeDate),
			optional("feed_version", FieldTypeString),
		},
	},
}

var formatLookup = map[string]*TableFormat{}

func init() {
	for _, format := range formats {
		format.lookup = map[string]int{}
		for i, field := range format.Fields {
			format.lookup[field.ID] = i
		}

		formatLookup[format.ID] = format
	}
}

// Formats returns every known table format in catalog order.
func Formats() []*TableFormat {
	return formats
}

func Lookup(id string) (*TableFormat, bool) {
	format, ok := formatLookup[id]
	return format, ok
}
