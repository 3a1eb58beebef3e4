// Package skeleton holds the body-tracking data model delivered by a
// skeleton sensor: joints, skeletons and frames.
//
// Positions are in sensor space (metres, right-handed, sensor at the
// origin looking down +Z). Values are replaced wholesale every frame;
// nothing downstream mutates a Skeleton in place.
package skeleton
