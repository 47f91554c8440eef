package types

import "github.com/google/uuid"

type UserID string

func NewUserID() UserID { return UserID(uuid.New().String()) }

type ProjectID string

func NewProjectID() ProjectID { return ProjectID(uuid.New().String()) }

type AreaID string

func NewAreaID() AreaID { return AreaID(uuid.New().String()) }

type HazardID string

func NewHazardID() HazardID { return HazardID(uuid.New().String()) }

type TemplateID string

func NewTemplateID() TemplateID { return TemplateID(uuid.New().String()) }

type ParticipantID string

func NewParticipantID() ParticipantID { return ParticipantID(uuid.New().String()) }

type BriefingID string

func NewBriefingID() BriefingID { return BriefingID(uuid.New().String()) }

type BriefingItemID string

func NewBriefingItemID() BriefingItemID { return BriefingItemID(uuid.New().String()) }

type AuditID string

func NewAuditID() AuditID { return AuditID(uuid.New().String()) }

func (id UserID) String() string        { return string(id) }
func (id ProjectID) String() string     { return string(id) }
func (id AreaID) String() string        { return string(id) }
func (id HazardID) String() string      { return string(id) }
func (id TemplateID) String() string    { return string(id) }
func (id ParticipantID) String() string { return string(id) }
func (id BriefingID) String() string    { return string(id) }
func (id AuditID) String() string       { return string(id) }
