// Package transfer copies uncommitted changes from one checkout into
// another.
//
// [CopyChanges] asks git which files differ from HEAD in the source
// checkout (modified, added, renamed, deleted and untracked) and mirrors
// them into the destination:
//
//   - deleted files are removed from the destination if present
//   - renamed files are copied under the new name and the old name is
//     removed from the destination
//   - everything else is copied over the destination file, keeping the
//     permission bits and modification time
//
// The destination is not required to be a checkout. Paths that would
// escape it are rejected before anything is written.
package transfer
