package employee

// Employee is a directory record. The filterable string columns are nullable
// in the source data; the status flags always carry a value.
type Employee struct {
	ID               int64   `json:"id" gorm:"primaryKey"`
	FirstName        string  `json:"first_name" gorm:"column:first_name;not null"`
	LastName         string  `json:"last_name" gorm:"column:last_name;not null"`
	ContactInfo      *string `json:"contact_info,omitempty" gorm:"column:contact_info"`
	Location         *string `json:"location,omitempty" gorm:"column:location;index"`
	Company          *string `json:"company,omitempty" gorm:"column:company;index"`
	Department       *string `json:"department,omitempty" gorm:"column:department;index"`
	Position         *string `json:"position,omitempty" gorm:"column:position;index"`
	StatusActive     bool    `json:"status_active" gorm:"column:status_active;not null"`
	StatusNotStarted bool    `json:"status_not_started" gorm:"column:status_not_started;not null"`
	StatusTerminated bool    `json:"status_terminated" gorm:"column:status_terminated;not null"`
}

func (Employee) TableName() string {
	return "employees"
}

// FullName is the synthesized searchable name. The SQL side builds the same
// concatenation, see fullNameExpr in query.go.
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Record is the response shape. Every gateable field is a pointer so masking
// can null it while the key stays in the JSON, keeping the record shape
// stable across authorization sets.
type Record struct {
	ID               int64   `json:"id"`
	FirstName        *string `json:"first_name"`
	LastName         *string `json:"last_name"`
	ContactInfo      *string `json:"contact_info"`
	Location         *string `json:"location"`
	Company          *string `json:"company"`
	Department       *string `json:"department"`
	Position         *string `json:"position"`
	StatusActive     *bool   `json:"status_active"`
	StatusNotStarted *bool   `json:"status_not_started"`
	StatusTerminated *bool   `json:"status_terminated"`
}

// FieldKind tells the query builder how to parse a filter value.
type FieldKind int

const (
	FieldString FieldKind = iota
	FieldBool
)

// FieldDescriptor maps a column name to its typed accessors. The table below
// is the single source of truth for projection: both the query builder and
// the masker enumerate it instead of reading struct fields by name at
// runtime.
type FieldDescriptor struct {
	Name       string
	Kind       FieldKind
	Gated      bool
	Filterable bool

	copy  func(e *Employee, rec *Record)
	clear func(rec *Record)
}

// Schema lists fields in storage order. id is the ungated primary key: it
// stays in every response unless a department grant explicitly drops it.
var Schema = []FieldDescriptor{
	{
		Name: "id", Kind: FieldString, Gated: false, Filterable: false,
		copy:  func(e *Employee, rec *Record) { rec.ID = e.ID },
		clear: func(rec *Record) {},
	},
	{
		Name: "first_name", Kind: FieldString, Gated: true, Filterable: false,
		copy:  func(e *Employee, rec *Record) { rec.FirstName = strPtr(e.FirstName) },
		clear: func(rec *Record) { rec.FirstName = nil },
	},
	{
		Name: "last_name", Kind: FieldString, Gated: true, Filterable: false,
		copy:  func(e *Employee, rec *Record) { rec.LastName = strPtr(e.LastName) },
		clear: func(rec *Record) { rec.LastName = nil },
	},
	{
		Name: "contact_info", Kind: FieldString, Gated: true, Filterable: false,
		copy:  func(e *Employee, rec *Record) { rec.ContactInfo = e.ContactInfo },
		clear: func(rec *Record) { rec.ContactInfo = nil },
	},
	{
		Name: "location", Kind: FieldString, Gated: true, Filterable: true,
		copy:  func(e *Employee, rec *Record) { rec.Location = e.Location },
		clear: func(rec *Record) { rec.Location = nil },
	},
	{
		Name: "company", Kind: FieldString, Gated: true, Filterable: true,
		copy:  func(e *Employee, rec *Record) { rec.Company = e.Company },
		clear: func(rec *Record) { rec.Company = nil },
	},
	{
		Name: "department", Kind: FieldString, Gated: true, Filterable: true,
		copy:  func(e *Employee, rec *Record) { rec.Department = e.Department },
		clear: func(rec *Record) { rec.Department = nil },
	},
	{
		Name: "position", Kind: FieldString, Gated: true, Filterable: true,
		copy:  func(e *Employee, rec *Record) { rec.Position = e.Position },
		clear: func(rec *Record) { rec.Position = nil },
	},
	{
		Name: "status_active", Kind: FieldBool, Gated: true, Filterable: true,
		copy:  func(e *Employee, rec *Record) { rec.StatusActive = boolPtr(e.StatusActive) },
		clear: func(rec *Record) { rec.StatusActive = nil },
	},
	{
		Name: "status_not_started", Kind: FieldBool, Gated: true, Filterable: true,
		copy:  func(e *Employee, rec *Record) { rec.StatusNotStarted = boolPtr(e.StatusNotStarted) },
		clear: func(rec *Record) { rec.StatusNotStarted = nil },
	},
	{
		Name: "status_terminated", Kind: FieldBool, Gated: true, Filterable: true,
		copy:  func(e *Employee, rec *Record) { rec.StatusTerminated = boolPtr(e.StatusTerminated) },
		clear: func(rec *Record) { rec.StatusTerminated = nil },
	},
}

// FilterableColumns returns the filter keys the search endpoint accepts, in
// schema order.
func FilterableColumns() []string {
	cols := make([]string, 0, len(Schema))
	for _, fd := range Schema {
		if fd.Filterable {
			cols = append(cols, fd.Name)
		}
	}
	return cols
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
