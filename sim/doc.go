/*
Package sim implements an in-memory replication layer for payloads of package
crdt. It is meant for convergence tests and demonstrations, not for production
transport.

A network holds a set of named replicas. Updates issued at one replica produce
messages to all others which are kept in a pool and delivered in random order
(seeded, hence reproducible). Messages can be duplicated on purpose. For
operation-based payloads, a message whose downstream precondition does not hold
yet stays in the pool and is offered again later, and duplicates are recognized
by sender and sequence number so that every operation takes effect exactly once.
For state-based payloads, duplicates are delivered as they are since merging is
idempotent.

All messages pass through a msgpack encoding on their way, so only what is
actually broadcast reaches the receiving replica.
*/
package sim
