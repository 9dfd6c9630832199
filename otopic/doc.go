// Package otopic contains hubs that filter delivery by topic.
//
// Every subscription stores a set of topic strings ([Hub]) or a pair
// of independent sets ([Hub2]), and every notification supplies the
// same shape. A subscription receives the notification when the sets
// intersect: in the one-dimensional case a single non-empty
// intersection suffices, in the two-dimensional case both dimensions
// must intersect independently.
//
// Topics compare by exact string equality only. A convention like a
// literal "*" meaning "everything" is an agreement between callers;
// the matching here never special-cases it.
package otopic
