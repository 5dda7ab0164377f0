// internal/journal/models.go
package journal

import (
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
)

// Models lists every table the journal migrates.
var Models = []any{
	&Run{},
	&Spawn{},
}

// Run is one invocation of the placement tool.
type Run struct {
	ID          uint           `json:"id" gorm:"primarykey"`
	CreatedAt   time.Time      `json:"createdAt"`
	StartedAt   time.Time      `json:"startedAt" gorm:"index"`
	DurationMs  int64          `json:"durationMs"`
	Status      string         `json:"status" gorm:"size:32;index"`
	Scene       string         `json:"scene" gorm:"size:255"`
	MarkerClass string         `json:"markerClass" gorm:"size:255"`
	Existing    int            `json:"existing"`
	Override    bool           `json:"override"`
	Created     int            `json:"created"`
	Error       string         `json:"error"`
	Config      datatypes.JSON `json:"config"`
	Spawns      []Spawn        `json:"spawns"`
}

func (*Run) TableName() string {
	return "placement_runs"
}

// Spawn is one marker index attempted during a Run.
type Spawn struct {
	ID         uint       `json:"id" gorm:"primarykey"`
	RunID      uint       `json:"runId" gorm:"index"`
	Index      int        `json:"index"`
	Label      string     `json:"label" gorm:"size:64"`
	Entity     string     `json:"entity" gorm:"size:255"`
	Location   geom.Point `json:"location"`
	Created    bool       `json:"created"`
	Error      string     `json:"error"`
	LabelError string     `json:"labelError"`
}

func (*Spawn) TableName() string {
	return "placement_spawns"
}
