package models

// GAETDate is a scheduled GAET test slot shown on the public site.
type GAETDate struct {
	Record   `bson:",inline"`
	Date     string `bson:"date" json:"date"`
	Mode     string `bson:"mode" json:"mode"`
	Label    string `bson:"label,omitempty" json:"label,omitempty"`
	IsActive bool   `bson:"isActive" json:"isActive"`
}

// AITSVideoSolution links a test paper to its recorded solution.
type AITSVideoSolution struct {
	Record    `bson:",inline"`
	TestName  string `bson:"testName" json:"testName"`
	Subject   string `bson:"subject" json:"subject"`
	VideoLink string `bson:"videoLink" json:"videoLink"`
	Order     int    `bson:"order" json:"order"`
	IsActive  bool   `bson:"isActive" json:"isActive"`
}
