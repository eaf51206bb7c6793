package models

import "time"

// ChargeType says how an option node is charged.
type ChargeType string

const (
	ChargeSubscriptionOnly      ChargeType = "Subscription Only"
	ChargePriceOnly             ChargeType = "Price Only"
	ChargePriceIfNoSubscription ChargeType = "Price If No Subscription"
)

// IsValidChargeType reports whether ct is one of the known charge types.
func IsValidChargeType(ct ChargeType) bool {
	switch ct {
	case ChargeSubscriptionOnly, ChargePriceOnly, ChargePriceIfNoSubscription:
		return true
	}
	return false
}

// QuestionType says what kind of client answer an option node expects.
type QuestionType string

const (
	QuestionSingleSelect    QuestionType = "Single Select"
	QuestionMultiSelect     QuestionType = "Multi Select"
	QuestionConditional     QuestionType = "Conditional"
	QuestionNumber          QuestionType = "Number"
	QuestionWrittenResponse QuestionType = "Written Response"
)

// IsValidQuestionType reports whether qt is one of the known question types.
func IsValidQuestionType(qt QuestionType) bool {
	switch qt {
	case QuestionSingleSelect, QuestionMultiSelect, QuestionConditional,
		QuestionNumber, QuestionWrittenResponse:
		return true
	}
	return false
}

// OptionNode is one configurable aspect of an offering. Nodes live in an
// OptionTree arena and reference their children by ID, so the type itself
// is not recursive. Names are unique among siblings and must not contain
// the path separator ".".
type OptionNode struct {
	ID          int    `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	// AddedTime extends the offering duration, in seconds.
	AddedTime int64 `bson:"addedTime" json:"addedTime"`
	// Price is an integer amount of cents; $10.99 = 1099.
	Price        int64        `bson:"price" json:"price"`
	IsRequired   bool         `bson:"isRequired" json:"isRequired"`
	ChargeType   ChargeType   `bson:"chargeType" json:"chargeType"`
	QuestionType QuestionType `bson:"questionType" json:"questionType"`
	// MinSelection applies when QuestionType is Multi Select.
	MinSelection int   `bson:"minSelection,omitempty" json:"minSelection,omitempty"`
	Children     []int `bson:"children" json:"children"`
}

// OptionTree is an arena of option nodes rooted at an offering. IDs are
// stable and never reused; Roots lists the top-level node IDs in order.
type OptionTree struct {
	Nodes  []OptionNode `bson:"nodes" json:"nodes"`
	Roots  []int        `bson:"roots" json:"roots"`
	NextID int          `bson:"nextId" json:"nextId"`
}

// FlatNode is the non-structural field set of an option node, keyed by full
// dot-joined path in a flattened tree. It is the canonical view for
// update-by-path and for answer validation.
type FlatNode struct {
	Description  string       `bson:"description,omitempty" json:"description,omitempty"`
	AddedTime    int64        `bson:"addedTime" json:"addedTime"`
	Price        int64        `bson:"price" json:"price"`
	IsRequired   bool         `bson:"isRequired" json:"isRequired"`
	ChargeType   ChargeType   `bson:"chargeType" json:"chargeType"`
	QuestionType QuestionType `bson:"questionType" json:"questionType"`
	MinSelection int          `bson:"minSelection,omitempty" json:"minSelection,omitempty"`
}

// Flat returns the node's non-structural fields.
func (n OptionNode) Flat() FlatNode {
	return FlatNode{
		Description:  n.Description,
		AddedTime:    n.AddedTime,
		Price:        n.Price,
		IsRequired:   n.IsRequired,
		ChargeType:   n.ChargeType,
		QuestionType: n.QuestionType,
		MinSelection: n.MinSelection,
	}
}

// Offering is a bookable unit of work: duration, option tree, custom hours
// and a denormalized copy of the owning business's blackout windows.
type Offering struct {
	ID          string   `bson:"id" json:"id"`
	BusinessID  string   `bson:"businessId" json:"businessId"`
	Name        string   `bson:"name" json:"name"`
	ServiceType string   `bson:"serviceType,omitempty" json:"serviceType,omitempty"`
	Tags        []string `bson:"tags,omitempty" json:"tags,omitempty"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	// Duration and PrepTime are in seconds.
	Duration int64 `bson:"duration" json:"duration"`
	PrepTime int64 `bson:"prepTime" json:"prepTime"`
	// CustomHours defaults to the business's table at creation and is
	// independently mutable afterwards.
	CustomHours OperatingHours `bson:"customHours" json:"customHours"`
	// Unavailability is synchronized from the business on window add/remove.
	Unavailability []UnavailabilityWindow `bson:"unavailability" json:"unavailability"`
	Items          OptionTree             `bson:"items" json:"items"`
	ProvideAddress bool                   `bson:"provideAddress" json:"provideAddress"`
	SpecialRequest bool                   `bson:"specialRequest" json:"specialRequest"`
	CreatedAt      time.Time              `bson:"createdAt" json:"createdAt"`
}
