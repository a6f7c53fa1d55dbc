// Package doctor checks that a repository is ready for a rebump run and
// optionally repairs what it can.
//
// Checks fall into three categories:
//
//   - [CategoryTools]: the git executable and the forge CLI used by --open-prs.
//
//   - [CategoryConfig]: the global and local config files.
//
//   - [CategoryRepo]: the remote, the main branch refs, a rebase left in
//     progress by an earlier run, and a run holding the repository lock.
//
// # Usage
//
//	issues := doctor.Check(ctx, env)
//	err := doctor.Run(ctx, env, false, w) // check and print
//	err := doctor.Run(ctx, env, true, w)  // check, fix and print
//
// Each [Issue] carries a description and either a fix action that --fix
// applies or a hint for resolving it by hand.
package doctor
