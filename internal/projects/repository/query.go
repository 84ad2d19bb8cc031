package repository

import (
	"slices"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/AngoraSix/projects.core/internal/projects/domain"
)

// CompileFilter turns a list filter plus the requesting contributor into
// the Mongo predicate enforcing project visibility. Anonymous requesters
// see public projects only; authenticated ones additionally see every
// project they administer. The compiled predicate is the single place
// visibility is decided, so repository callers never re-check it.
//
// A filter that can only be satisfied by projects the requester is not
// allowed to see compiles to a predicate matching nothing.
func CompileFilter(f domain.ListProjectsFilter, requester *domain.Contributor) bson.M {
	requestingOwn := requester != nil &&
		(len(f.AdminIDs) == 0 || slices.Contains(f.AdminIDs, requester.ContributorID))
	requestingOthers := requester == nil ||
		len(f.AdminIDs) == 0 ||
		!slices.Contains(f.AdminIDs, requester.ContributorID)

	// Only private projects of other contributors could match.
	if f.Private != nil && *f.Private && !requestingOwn {
		return bson.M{"_id": nil}
	}

	branches := bson.A{}
	if requestingOthers {
		branches = append(branches, othersBranch(f, requester))
	}
	if requestingOwn {
		branches = append(branches, ownBranch(f, requester))
	}

	var predicate bson.M
	if len(branches) == 1 {
		predicate = branches[0].(bson.M)
	} else {
		predicate = bson.M{"$or": branches}
	}

	if len(f.IDs) > 0 {
		predicate["_id"] = bson.M{"$in": f.IDs}
	}
	return predicate
}

// othersBranch matches projects the requester does not administer, which
// restricts the branch to public ones regardless of the privacy flag the
// caller asked for.
func othersBranch(f domain.ListProjectsFilter, requester *domain.Contributor) bson.M {
	branch := bson.M{"private": false}
	switch {
	case len(f.AdminIDs) > 0:
		branch["admins"] = bson.M{
			"$elemMatch": bson.M{"contributorId": bson.M{"$in": f.AdminIDs}},
		}
	case requester != nil:
		// Projects the requester administers belong to the own branch;
		// keep the branches disjoint so matches are not duplicated.
		branch["admins"] = bson.M{
			"$not": bson.M{"$elemMatch": bson.M{"contributorId": requester.ContributorID}},
		}
	}
	return branch
}

// ownBranch matches projects the requester administers, private or not.
func ownBranch(f domain.ListProjectsFilter, requester *domain.Contributor) bson.M {
	branch := bson.M{
		"admins": bson.M{"$elemMatch": bson.M{"contributorId": requester.ContributorID}},
	}
	if f.Private != nil {
		branch["private"] = *f.Private
	}
	return branch
}
