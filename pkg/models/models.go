package models

import "time"

type MachineStatus string

const (
	MachineStatusOnline  MachineStatus = "online"
	MachineStatusOffline MachineStatus = "offline"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

type APIKey struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	KeyHash   string     `gorm:"index;not null" json:"-"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	LastUsed  *time.Time `json:"last_used"`
}

type Machine struct {
	ID       uint          `gorm:"primaryKey" json:"id"`
	UserID   uint          `gorm:"index;not null" json:"user_id"`
	APIKeyID *uint         `gorm:"index" json:"api_key_id"`
	Name     string        `json:"name"`
	LastSeen time.Time     `json:"last_seen"`
	Status   MachineStatus `gorm:"type:varchar(10);check:status IN ('online','offline')" json:"status"`
}

// A peripheral's identity is (machine, name); re-registration only ever
// refreshes type, location and last_updated.
type Peripheral struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	MachineID   uint      `gorm:"uniqueIndex:idx_machine_peripheral;not null" json:"machine_id"`
	Name        string    `gorm:"uniqueIndex:idx_machine_peripheral;not null" json:"name"`
	Type        string    `json:"type"`
	Location    string    `json:"location"`
	LastUpdated time.Time `json:"last_updated"`
}

type Route struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             uint      `gorm:"index;not null" json:"user_id"`
	Name               string    `gorm:"not null" json:"name"`
	SourcePeripheralID uint      `gorm:"index;not null" json:"source_peripheral_id"`
	DestPeripheralID   uint      `gorm:"index;not null" json:"dest_peripheral_id"`
	ItemFilter         string    `json:"item_filter"`
	Enabled            bool      `json:"enabled"`
	CreatedAt          time.Time `json:"created_at"`

	Items []RouteItem `gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

type RouteItem struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RouteID  uint   `gorm:"index;not null" json:"route_id"`
	ItemName string `gorm:"not null" json:"item_name"`
}

// RouteView is a route annotated with its resolved endpoint names/machine
// ids and its explicit item-name set.
type RouteView struct {
	ID                 uint      `json:"id"`
	UserID             uint      `json:"user_id"`
	Name               string    `json:"name"`
	SourcePeripheralID uint      `json:"source_peripheral_id"`
	DestPeripheralID   uint      `json:"dest_peripheral_id"`
	ItemFilter         string    `json:"item_filter"`
	Enabled            bool      `json:"enabled"`
	CreatedAt          time.Time `json:"created_at"`
	SourceName         string    `json:"source_name"`
	SourceMachineID    uint      `json:"source_machine_id"`
	DestName           string    `json:"dest_name"`
	DestMachineID      uint      `json:"dest_machine_id"`
	ItemNames          []string  `gorm:"-" json:"item_names"`
}

type CreateRouteInput struct {
	Name               string
	SourcePeripheralID uint
	DestPeripheralID   uint
	ItemFilter         string
	ItemNames          []string
}

// UpdateRouteInput is a partial patch; nil fields are left untouched. A
// non-nil ItemNames fully replaces the route's item-name set.
type UpdateRouteInput struct {
	Name               *string
	SourcePeripheralID *uint
	DestPeripheralID   *uint
	ItemFilter         *string
	Enabled            *bool
	ItemNames          *[]string
}

// PeripheralView is a peripheral annotated with its machine's name, for the
// management listing.
type PeripheralView struct {
	ID          uint      `json:"id"`
	MachineID   uint      `json:"machine_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Location    string    `json:"location"`
	LastUpdated time.Time `json:"last_updated"`
	MachineName string    `json:"machine_name"`
}

const ActionTransfer = "transfer"

// Command is an ephemeral instruction derived from a route on every poll.
// It is never persisted; the client applies the filter against its own
// inventory, since only the machine can see inventory contents.
type Command struct {
	RouteID         uint     `json:"route_id"`
	Action          string   `json:"action"`
	Source          string   `json:"source"`
	Dest            string   `json:"dest"`
	SourceMachineID uint     `json:"source_machine_id"`
	DestMachineID   uint     `json:"dest_machine_id"`
	ItemFilter      string   `json:"item_filter"`
	ItemNames       []string `json:"item_names"`
}
