package domain

// Contributor is the principal a request acts as. A nil *Contributor
// means the request is anonymous.
//
// Contributors are identified by an opaque id issued by the gateway;
// two contributors are the same iff their ids match.
type Contributor struct {
	ContributorID string `bson:"contributorId" json:"contributorId"`
}
