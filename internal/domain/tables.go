package domain

// Tables lists every model migrated at startup
var Tables = []interface{}{
	&User{},
	&Product{},
	&Order{},
	&OrderItem{},
	&MembershipTier{},
	&UserMembership{},
	&Purchase{},
	&SysConfig{},
	&SysScheduler{},
	&EmailLog{},
	&NewsletterSubscriber{},
}
