// Package models defines the core domain models for tripsplit.
//
// # Stored Models
//
// The following models are persisted by the storage layer:
//   - Trip: A state container holding one group's participants, expenses and base currency
//   - Participant: A person taking part in a trip
//   - Expense: A single payment made by one participant on behalf of the group
//   - RateTable: The last exchange-rate snapshot fetched for a base currency
//   - User: A registered account that owns trips
//
// # Derived Models
//
// The following models are recomputed on demand and never persisted:
//   - ParticipantBalance: What one participant paid, should pay, and their net position
//   - SettlementTransfer: One instruction to move money between two participants
//
// # Design Principles
//
// 1. **Plain data**: Models carry no behavior beyond small helpers, so they serialize as-is
// 2. **IDs over pointers**: Relationships use ID strings (an Expense references its payer by ID)
// 3. **One base currency**: Balances and transfers are always expressed in the trip's base currency
// 4. **Cascade by the owner**: Removing a participant removes their expenses in the same operation
package models
